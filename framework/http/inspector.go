package http

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/routing"
)

// Inspector exposes a container's registration table over HTTP for
// debugging. It never resolves anything.
type Inspector struct {
	c *container.Container
}

// NewInspector creates an Inspector for c.
func NewInspector(c *container.Container) *Inspector {
	return &Inspector{c: c}
}

// Routes mounts the inspector endpoints on r:
//
//	GET /contracts                 registered contract names
//	GET /graph?contract=<name>     dependency tree of one contract
//	GET /validate                  every broken registration
func (i *Inspector) Routes(r *routing.Router) {
	r.Get("/contracts", i.Contracts)
	r.Get("/graph", i.Graph)
	r.Get("/validate", i.Validate)
}

// Contracts lists registered contracts ordered by name.
func (i *Inspector) Contracts(w http.ResponseWriter, _ *http.Request) {
	contracts := i.c.Contracts()
	names := make([]string, len(contracts))
	for n, t := range contracts {
		names[n] = fmt.Sprint(t)
	}
	NewResponse(w).Success(names)
}

// Graph describes the contract named by the "contract" query parameter.
func (i *Inspector) Graph(w http.ResponseWriter, req *http.Request) {
	res := NewResponse(w)

	name := req.URL.Query().Get("contract")
	if name == "" {
		res.BadRequest("query parameter contract is required")
		return
	}
	contract, ok := i.find(name)
	if !ok {
		res.NotFound("no registered contract named " + name)
		return
	}

	node, err := i.c.Describe(contract)
	if err != nil {
		res.Unprocessable(err.Error(), []string{err.Error()})
		return
	}
	res.Success(node)
}

// Validate reports whether every registration is resolvable.
func (i *Inspector) Validate(w http.ResponseWriter, _ *http.Request) {
	res := NewResponse(w)

	err := i.c.Validate()
	if err == nil {
		res.Success(map[string]bool{"valid": true})
		return
	}

	var messages []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			messages = append(messages, e.Error())
		}
	} else {
		messages = []string{err.Error()}
	}
	res.Unprocessable("container has unresolvable registrations", messages)
}

func (i *Inspector) find(name string) (reflect.Type, bool) {
	for _, t := range i.c.Contracts() {
		if fmt.Sprint(t) == name {
			return t, true
		}
	}
	return nil, false
}
