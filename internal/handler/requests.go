package handler

import (
	"net/url"

	"github.com/deppfellow/service-chain/internal/model"
)

// Request is implemented by every request type. BindQuery receives the
// decoded query, in which an absent key and an empty value differ.
type Request interface {
	BindQuery(values url.Values)
}

// NameRequest is the edge service's query: GET /?name=<value>.
type NameRequest struct {
	Name string
}

func NewNameRequest() *NameRequest { return &NameRequest{} }

// BindQuery defaults an absent name to model.UnknownParam and keeps an
// empty one as is.
func (r *NameRequest) BindQuery(values url.Values) {
	r.Name = model.ParamOrDefault(values, "name")
}

// PrefixRequest is the data service's query: GET /route?p=<value>.
type PrefixRequest struct {
	Prefix string
}

func NewPrefixRequest() *PrefixRequest { return &PrefixRequest{} }

func (r *PrefixRequest) BindQuery(values url.Values) {
	r.Prefix = model.ParamOrDefault(values, "p")
}

// EmptyRequest is used by routes without input.
type EmptyRequest struct{}

func NewEmptyRequest() *EmptyRequest { return &EmptyRequest{} }

func (r *EmptyRequest) BindQuery(url.Values) {}
