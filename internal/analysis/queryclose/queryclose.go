// Package queryclose содержит анализатор, который находит представления
// url2.QueryUnique, открытые и сразу потерянные без Close.
//
// Такое представление никогда не перезапишет query-строку:
//
//	u.QueryUnique().SetPair("a", "1") // изменение потеряно
//
// Правильно:
//
//	q := u.QueryUnique()
//	q.SetPair("a", "1")
//	q.Close()
package queryclose

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const url2Path = "github.com/Popolzen/url2"

var Analyzer = &analysis.Analyzer{
	Name:     "queryuniqueclose",
	Doc:      "сообщает об url2.QueryUnique, которые открываются и теряются без Close",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.ExprStmt)(nil)}, func(n ast.Node) {
		stmt := n.(*ast.ExprStmt)
		call, ok := ast.Unparen(stmt.X).(*ast.CallExpr)
		if !ok || !isQueryUnique(pass.TypesInfo.TypeOf(call)) {
			return
		}
		if opensView(pass, call) {
			pass.Reportf(call.Pos(), "результат QueryUnique не закрыт: query-строка не будет перезаписана")
		}
	})

	return nil, nil
}

// opensView идёт по цепочке вызовов к её началу и проверяет,
// что цепочка начинается с открытия представления
func opensView(pass *analysis.Pass, call *ast.CallExpr) bool {
	for {
		sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
		if !ok {
			return false
		}
		if sel.Sel.Name == "QueryUnique" && isQueryUnique(pass.TypesInfo.TypeOf(call)) {
			return true
		}
		inner, ok := ast.Unparen(sel.X).(*ast.CallExpr)
		if !ok {
			// цепочка на уже сохранённом представлении
			return false
		}
		call = inner
	}
}

func isQueryUnique(t types.Type) bool {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return false
	}
	named, ok := ptr.Elem().(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Name() == "QueryUnique" && obj.Pkg() != nil && obj.Pkg().Path() == url2Path
}
