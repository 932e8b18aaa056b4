package binder

import (
	"strings"

	"github.com/mna/pybind/lang/ast"
)

// bindMemberAccess implements §4.5's member-access heuristic: an assignment
// whose target is "self.x" inside an ordinary (non-static, non-class)
// method declares an InstanceMember symbol in the enclosing class's scope;
// "cls.x" inside a @classmethod, or "__new__"'s first parameter, or the
// class's own name used as a receiver ("ClassName.x"), declares a
// ClassMember symbol there instead. Any other attribute-assignment target
// ("obj.x", or "self.x" inside a @staticmethod, where "self" is just an
// ordinary parameter name) is not a recognized declaration site — the
// binder adds the current flow to any enclosing except handler's label (as
// a potential exception source) but creates no flow node for the store and
// adds no symbol anywhere.
func (b *Binder) bindMemberAccess(attr *ast.Attribute, value ast.Expr) {
	base, ok := attr.Value.(*ast.Name)
	if !ok || b.currentClassScope == nil {
		b.addToExceptTargets(b.currentFlow)
		return
	}

	var flags SymbolFlags
	switch {
	case b.currentClassName != "" && base.Id == b.currentClassName:
		// "ClassName.y = ..." inside one of the class's own methods declares a
		// class member the same way "cls.y = ..." does.
		flags = ClassMember
	case b.currentSelfParamName != "" && base.Id == b.currentSelfParamName:
		switch {
		case b.currentIsClassMethod:
			flags = ClassMember
		case b.currentIsStaticMethod:
			// A @staticmethod has no implicit self/cls, so a same-named first
			// parameter is just a parameter; not a member declaration.
			b.addToExceptTargets(b.currentFlow)
			return
		default:
			flags = InstanceMember
		}
	default:
		b.addToExceptTargets(b.currentFlow)
		return
	}
	if isPrivateMemberName(attr.Attr.Id) {
		flags |= PrivateMember
	}

	sym := b.currentClassScope.AddSymbol(attr.Attr.Id, flags)
	sym.AddDeclaration(&VariableDecl{Node: attr, InferredTypeSource: value, Range: SpanOf(attr.Attr)})
	b.currentFlow = newAssignmentNode(attr, b.currentFlow, sym.ID, false)
	b.info.setFlow(attr, b.currentFlow)
	b.addToExceptTargets(b.currentFlow)
}

func isPrivateMemberName(name string) bool {
	return strings.HasPrefix(name, "_")
}
