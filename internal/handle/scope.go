package handle

import (
	"slices"

	"github.com/bnema/wlhandle/internal/logger"
)

// Resource is a wrapper whose lifetime can be tied to a parent wrapper.
type Resource interface {
	Close() error
	Valid() bool
	Interface() *Interface
	node() *scope
}

// scope records the children that must be destroyed before their parent.
type scope struct {
	parent   *scope
	children []Resource
}

// Adopt ties child to parent: closing parent first closes child. A child has
// at most one parent; adopting it again moves it.
func Adopt(parent, child Resource) {
	p, c := parent.node(), child.node()
	if p == c {
		return
	}
	c.detach()
	c.parent = p
	p.children = append(p.children, child)
}

// Children returns the number of children not yet closed.
func Children(r Resource) int {
	return len(r.node().children)
}

func (s *scope) detach() {
	if s.parent == nil {
		return
	}
	s.parent.children = slices.DeleteFunc(s.parent.children, func(r Resource) bool {
		return r.node() == s
	})
	s.parent = nil
}

// inherit gives self the place of from in the tree: from's parent link and
// from's children. from is left detached and childless.
func (s *scope) inherit(from *scope, self Resource) {
	if s.parent == from {
		s.detach()
	}
	if parent := from.parent; parent != nil {
		from.detach()
		if parent != s && s.parent != parent {
			s.detach()
			s.parent = parent
			parent.children = append(parent.children, self)
		}
	}
	kids := from.children
	from.children = nil
	for _, kid := range kids {
		if kid.node() == s {
			continue
		}
		kid.node().parent = s
		s.children = append(s.children, kid)
	}
}

func (s *scope) closeChildren(owner *Interface) []error {
	kids := s.children
	s.children = nil
	var errs []error
	for i := len(kids) - 1; i >= 0; i-- {
		kid := kids[i]
		kid.node().parent = nil
		if kid.Valid() {
			logger.Warn("closing child before its parent", "parent", owner, "child", kid.Interface())
		}
		errs = append(errs, kid.Close())
	}
	return errs
}
