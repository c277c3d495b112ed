package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/ast/inspector"
)

// LeaseReleaseAnalyzer проверяет, что результат Launch освобождается через defer.
// Результатом считается значение, у которого есть метод Release.
var LeaseReleaseAnalyzer = &analysis.Analyzer{
	Name:     "leaserelease",
	Doc:      "checks that a value returned by Launch is released with defer in the same function",
	Run:      runLeaseReleaseCheck,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

const (
	launchName  = "Launch"
	releaseName = "Release"
)

func runLeaseReleaseCheck(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.FuncLit)(nil),
	}

	inspect.Preorder(nodeFilter, func(node ast.Node) {
		var body *ast.BlockStmt
		switch fn := node.(type) {
		case *ast.FuncDecl:
			body = fn.Body
		case *ast.FuncLit:
			body = fn.Body
		}
		if body == nil {
			return
		}
		checkFunc(pass, body)
	})

	return nil, nil
}

// launch - присваивание результата Launch переменной
type launch struct {
	call *ast.CallExpr
	obj  types.Object // nil, если результат отброшен
}

// checkFunc проверяет одно тело функции, не заходя во вложенные литералы
func checkFunc(pass *analysis.Pass, body *ast.BlockStmt) {
	var launches []launch
	handled := make(map[types.Object]bool)

	ast.Inspect(body, func(n ast.Node) bool {
		switch stmt := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.AssignStmt:
			if l, ok := launchAssignment(pass, stmt); ok {
				launches = append(launches, l)
			}
		case *ast.DeferStmt:
			// defer lease.Release() или defer func() { ... lease.Release() ... }()
			ast.Inspect(stmt.Call, func(n ast.Node) bool {
				if obj := releaseReceiver(pass, n); obj != nil {
					handled[obj] = true
				}
				return true
			})
			return false
		case *ast.ReturnStmt:
			// Значение, возвращенное вызывающему, освобождает он
			for _, res := range stmt.Results {
				if id, ok := astutil.Unparen(res).(*ast.Ident); ok {
					if obj := pass.TypesInfo.Uses[id]; obj != nil {
						handled[obj] = true
					}
				}
			}
		}
		return true
	})

	for _, l := range launches {
		if l.obj == nil {
			pass.Reportf(l.call.Pos(), "result of %s is discarded and never released", launchName)
			continue
		}
		if !handled[l.obj] {
			pass.Reportf(l.call.Pos(), "%s from %s is not released with defer", l.obj.Name(), launchName)
		}
	}
}

// launchAssignment распознает x, err := <...>.Launch(...) с результатом, у которого есть Release
func launchAssignment(pass *analysis.Pass, stmt *ast.AssignStmt) (launch, bool) {
	if len(stmt.Rhs) != 1 || len(stmt.Lhs) == 0 {
		return launch{}, false
	}
	call, ok := astutil.Unparen(stmt.Rhs[0]).(*ast.CallExpr)
	if !ok || calleeName(call) != launchName {
		return launch{}, false
	}
	if !hasRelease(firstResult(pass.TypesInfo.TypeOf(call))) {
		return launch{}, false
	}

	id, ok := stmt.Lhs[0].(*ast.Ident)
	if !ok {
		// Присваивание в поле структуры передает владение
		return launch{}, false
	}
	if id.Name == "_" {
		return launch{call: call}, true
	}
	return launch{call: call, obj: pass.TypesInfo.ObjectOf(id)}, true
}

// releaseReceiver возвращает объект x для вызова x.Release()
func releaseReceiver(pass *analysis.Pass, n ast.Node) types.Object {
	call, ok := n.(*ast.CallExpr)
	if !ok {
		return nil
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != releaseName {
		return nil
	}
	id, ok := astutil.Unparen(sel.X).(*ast.Ident)
	if !ok {
		return nil
	}
	return pass.TypesInfo.Uses[id]
}

func calleeName(call *ast.CallExpr) string {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		return fun.Name
	case *ast.SelectorExpr:
		return fun.Sel.Name
	}
	return ""
}

func firstResult(t types.Type) types.Type {
	if tuple, ok := t.(*types.Tuple); ok {
		if tuple.Len() == 0 {
			return nil
		}
		return tuple.At(0).Type()
	}
	return t
}

func hasRelease(t types.Type) bool {
	if t == nil {
		return false
	}
	obj, _, _ := types.LookupFieldOrMethod(t, true, nil, releaseName)
	_, ok := obj.(*types.Func)
	return ok
}
