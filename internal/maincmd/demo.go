package maincmd

import (
	_ "embed"

	"github.com/mna/pybind/lang/ast"
	"github.com/mna/pybind/lang/token"
)

// demoSource is the human-readable counterpart of buildDemoModule's
// hand-built tree, embedded purely for display: this repository carries no
// parser (SPEC_FULL.md's DOMAIN STACK), so the bind command binds a tree
// built directly in Go rather than one produced by scanning this text, but
// printing the text alongside the bound result lets a reader check the two
// against each other.
//
//go:embed demo.py
var demoSource string

func pos(line, col int) token.Pos { return token.MakePos(line, col) }

func name(id string, line, col int) *ast.Name { return &ast.Name{Id: id, Start: pos(line, col)} }

func strConst(s string, line, col int) *ast.Constant {
	return &ast.Constant{Kind: token.STRING, Start: pos(line, col), Raw: `"` + s + `"`, Value: s}
}

// buildDemoFile registers demoSource's lines with fs under path, returning
// the *token.File the demo module's positions are relative to.
func buildDemoFile(fs *token.FileSet, path string) *token.File {
	var lines []string
	start := 0
	for i, r := range demoSource {
		if r == '\n' {
			lines = append(lines, demoSource[start:i])
			start = i + 1
		}
	}
	lines = append(lines, demoSource[start:])
	return fs.AddFile(path, lines)
}

// buildDemoModule hand-builds the AST for demo.py's content (§9's worked
// examples shaped this module: a module docstring, an import, a module
// constant, a class with an instance member assigned in __init__ and a
// class member assigned in a classmethod, an if/else merge, and a deferred
// function body referencing the class defined earlier in the module).
func buildDemoModule(path string) *ast.Module {
	initSelf := name("self", 9, 18)
	initName := &ast.Attribute{Value: name("self", 10, 9), Dot: pos(10, 13), Attr: name("name", 10, 14)}
	initBody := ast.Suite{
		Start: pos(10, 9), End: pos(10, 25),
		Stmts: []ast.Stmt{
			&ast.Assign{Targets: []ast.Expr{initName}, Value: name("name", 10, 21)},
		},
	}
	initDef := &ast.FunctionDef{
		Def:  pos(9, 5),
		Name: name("__init__", 9, 9),
		Params: &ast.Parameters{Args: []*ast.Param{
			{Name: initSelf},
			{Name: name("name", 9, 24)},
		}},
		Body: &initBody,
		End:  pos(10, 25),
	}

	clsCount := &ast.Attribute{Value: name("cls", 14, 9), Dot: pos(14, 12), Attr: name("count", 14, 13)}
	defaultBody := ast.Suite{
		Start: pos(14, 9), End: pos(15, 32),
		Stmts: []ast.Stmt{
			&ast.Assign{Targets: []ast.Expr{clsCount}, Value: &ast.Constant{Kind: token.INT, Start: pos(14, 21), Raw: "0", Value: int64(0)}},
			&ast.Return{Start: pos(15, 9), Value: &ast.Call{
				Func:   name("Greeter", 15, 16),
				Lparen: pos(15, 23),
				Args:   []ast.Expr{strConst("world", 15, 24)},
				Rparen: pos(15, 31),
			}},
		},
	}
	defaultDef := &ast.FunctionDef{
		Decorators: []ast.Expr{name("classmethod", 12, 6)},
		Def:        pos(13, 5),
		Name:       name("default", 13, 9),
		Params:     &ast.Parameters{Args: []*ast.Param{{Name: name("cls", 13, 17)}}},
		Body:       &defaultBody,
		End:        pos(15, 32),
	}

	greetSelf := name("self", 17, 15)
	greetTest := &ast.Attribute{Value: name("self", 18, 12), Dot: pos(18, 16), Attr: name("name", 18, 17)}
	greetIf := &ast.If{
		Start: pos(18, 9),
		Test:  greetTest,
		Body: &ast.Suite{
			Start: pos(19, 13), End: pos(19, 31),
			Stmts: []ast.Stmt{
				&ast.Assign{Targets: []ast.Expr{name("message", 19, 13)}, Value: name("GREETING", 19, 23)},
			},
		},
		Orelse: &ast.Suite{
			Start: pos(21, 13), End: pos(21, 34),
			Stmts: []ast.Stmt{
				&ast.Assign{Targets: []ast.Expr{name("message", 21, 13)}, Value: strConst("anonymous", 21, 23)},
			},
		},
	}
	greetBody := ast.Suite{
		Start: pos(18, 9), End: pos(22, 23),
		Stmts: []ast.Stmt{
			greetIf,
			&ast.Return{Start: pos(22, 9), Value: name("message", 22, 16)},
		},
	}
	greetDef := &ast.FunctionDef{
		Def:    pos(17, 5),
		Name:   name("greet", 17, 9),
		Params: &ast.Parameters{Args: []*ast.Param{{Name: greetSelf}}},
		Body:   &greetBody,
		End:    pos(22, 23),
	}

	classBody := ast.Suite{
		Start: pos(9, 5), End: pos(22, 23),
		Stmts: []ast.Stmt{initDef, defaultDef, greetDef},
	}
	classDef := &ast.ClassDef{
		Class: pos(8, 1),
		Name:  name("Greeter", 8, 7),
		Body:  &classBody,
		End:   pos(22, 23),
	}

	mainBody := ast.Suite{
		Start: pos(26, 5), End: pos(27, 21),
		Stmts: []ast.Stmt{
			&ast.Assign{
				Targets: []ast.Expr{name("g", 26, 5)},
				Value: &ast.Call{
					Func:   &ast.Attribute{Value: name("Greeter", 26, 9), Dot: pos(26, 16), Attr: name("default", 26, 17)},
					Lparen: pos(26, 24),
					Rparen: pos(26, 25),
				},
			},
			&ast.ExprStmt{Value: &ast.Call{
				Func:   name("print", 27, 5),
				Lparen: pos(27, 10),
				Args: []ast.Expr{&ast.Call{
					Func:   &ast.Attribute{Value: name("g", 27, 11), Dot: pos(27, 12), Attr: name("greet", 27, 13)},
					Lparen: pos(27, 18),
					Rparen: pos(27, 19),
				}},
				Rparen: pos(27, 20),
			}},
		},
	}
	mainDef := &ast.FunctionDef{
		Def:    pos(25, 1),
		Name:   name("main", 25, 5),
		Params: &ast.Parameters{},
		Body:   &mainBody,
		End:    pos(27, 21),
	}

	body := &ast.Suite{
		Start: pos(1, 1), End: pos(27, 21),
		Stmts: []ast.Stmt{
			&ast.ExprStmt{Value: strConst("pybind demo module.", 1, 1)},
			&ast.Import{Start: pos(3, 1), Names: []*ast.Alias{{Path: []*ast.Name{name("os", 3, 8)}}}},
			&ast.Assign{
				Targets: []ast.Expr{name("GREETING", 5, 1)},
				Value:   strConst("hello", 5, 12),
			},
			classDef,
			mainDef,
		},
	}

	return &ast.Module{Name: path, Body: body, EOF: pos(27, 27)}
}
