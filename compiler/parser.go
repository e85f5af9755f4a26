package compiler

import (
	"fmt"
	"strconv"

	"lime/vm"
)

// precedence matches spec's BIN_OP_PREC table, carried over unchanged
// from original_source/parser.c's BIN_OP_PREC[].
var precedence = map[TokenKind]int{
	TkStar: 90, TkSlash: 90, TkPercent: 90,
	TkPlus: 80, TkMinus: 80,
	TkLt: 70, TkLe: 70, TkGt: 70, TkGe: 70,
	TkEq: 60, TkNe: 60,
	TkAmp:  55,
	TkCaret: 54,
	TkPipe:  53,
	TkAndAnd: 50,
	TkOrOr:   40,
}

func isLogical(op TokenKind) bool { return op == TkAndAnd || op == TkOrOr }

func isComparison(op TokenKind) bool {
	switch op {
	case TkEq, TkNe, TkLt, TkLe, TkGt, TkGe:
		return true
	}
	return false
}

type Parser struct {
	lex *Lexer
	tok Token

	global *Context
}

func NewParser(src []byte) (*Parser, error) {
	p := &Parser{lex: NewLexer(src), global: NewGlobalContext()}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) errf(format string, args ...any) error {
	return vm.NewPositionError(fmt.Errorf(format, args...), p.tok.Row, p.tok.Col)
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, p.errf("unexpected token")
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// Parse compiles the full source unit into a typed Program.
func Parse(src []byte) (*Program, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

// A source file is a flat statement stream run as the global context's
// own frame: var decls, prints, loops, ifs, and func declarations may
// appear in any order and interleaved, matching
// original_source/parser.c's parser_parse, which just calls
// statements(block, TK_FIN) against the global context with no
// required entry-point function.
func (p *Parser) parseProgram() (*Program, error) {
	row, col := p.tok.Row, p.tok.Col
	block := &Block{posInfo: posInfo{row, col}, Global: true}
	for p.tok.Kind != TkEOF {
		stmt, err := p.parseStatement(p.global)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	block.NumVars = *p.global.nextSlot
	return &Program{Body: block}, nil
}

func (p *Parser) parseTypeTag() (vm.TypeTag, error) {
	switch p.tok.Kind {
	case TkI8:
		p.advance()
		return vm.TagI8, nil
	case TkU8:
		p.advance()
		return vm.TagU8, nil
	case TkI16:
		p.advance()
		return vm.TagI16, nil
	case TkU16:
		p.advance()
		return vm.TagU16, nil
	case TkI32:
		p.advance()
		return vm.TagI32, nil
	case TkU32:
		p.advance()
		return vm.TagU32, nil
	case TkI64:
		p.advance()
		return vm.TagI64, nil
	case TkU64:
		p.advance()
		return vm.TagU64, nil
	case TkF32:
		p.advance()
		return vm.TagF32, nil
	case TkF64:
		p.advance()
		return vm.TagF64, nil
	case TkBool:
		p.advance()
		return vm.TagBool, nil
	case TkStr:
		p.advance()
		return vm.TagStr, nil
	default:
		return vm.TagVoid, p.errf("expected type name")
	}
}

func (p *Parser) parseFuncDecl() (*FuncDecl, error) {
	row, col := p.tok.Row, p.tok.Col
	if _, err := p.expect(TkFunc); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(TkIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TkLParen); err != nil {
		return nil, err
	}

	fnCtx := p.global.NewFunctionContext()
	var paramSyms []*Symbol
	var paramTypes []vm.TypeTag
	for p.tok.Kind != TkRParen {
		if len(paramSyms) > 0 {
			if _, err := p.expect(TkComma); err != nil {
				return nil, err
			}
		}
		pname, err := p.expect(TkIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TkColon); err != nil {
			return nil, err
		}
		ptyp, err := p.parseTypeTag()
		if err != nil {
			return nil, err
		}
		sym, err := fnCtx.Declare(pname.Value, ptyp)
		if err != nil {
			return nil, p.errf("%v", err)
		}
		paramSyms = append(paramSyms, sym)
		paramTypes = append(paramTypes, ptyp)
	}
	if _, err := p.expect(TkRParen); err != nil {
		return nil, err
	}

	returns := vm.TagVoid
	if p.tok.Kind == TkColon {
		p.advance()
		returns, err = p.parseTypeTag()
		if err != nil {
			return nil, err
		}
	}

	label := NewLabel()
	sym, err := p.global.DeclareFunc(nameTok.Value, paramTypes, returns, label)
	if err != nil {
		return nil, p.errf("%v", err)
	}
	fnCtx.returnType = returns

	body, err := p.parseBlock(fnCtx)
	if err != nil {
		return nil, err
	}

	return &FuncDecl{
		posInfo: posInfo{row, col},
		Sym:     sym,
		Params:  paramSyms,
		Body:    body,
		NumVars: *fnCtx.nextSlot,
	}, nil
}

func (p *Parser) parseBlock(ctx *Context) (*Block, error) {
	row, col := p.tok.Row, p.tok.Col
	if _, err := p.expect(TkLBrace); err != nil {
		return nil, err
	}
	block := &Block{posInfo: posInfo{row, col}}
	for p.tok.Kind != TkRBrace {
		stmt, err := p.parseStatement(ctx)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if _, err := p.expect(TkRBrace); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseStatement(ctx *Context) (Node, error) {
	switch p.tok.Kind {
	case TkVar:
		return p.parseVarDecl(ctx)
	case TkIf:
		return p.parseIf(ctx)
	case TkFor:
		return p.parseFor(ctx)
	case TkReturn:
		return p.parseReturn(ctx)
	case TkBreak:
		return p.parseBreak(ctx)
	case TkContinue:
		return p.parseContinue(ctx)
	case TkFunc:
		return p.parseFuncDecl()
	case TkLBrace:
		block, err := p.parseBlock(ctx.NewBlockContext())
		return block, err
	default:
		return p.parseSimpleStatement(ctx)
	}
}

func (p *Parser) semicolon() error {
	_, err := p.expect(TkSemicolon)
	return err
}

func (p *Parser) parseVarDecl(ctx *Context) (Node, error) {
	decl, err := p.parseVarDeclNoSemi(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseVarDeclNoSemi(ctx *Context) (Node, error) {
	row, col := p.tok.Row, p.tok.Col
	if _, err := p.expect(TkVar); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(TkIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TkColon); err != nil {
		return nil, err
	}

	if p.tok.Kind == TkLBracket {
		return p.parseArrayDeclNoSemi(ctx, row, col, nameTok.Value)
	}

	typ, err := p.parseTypeTag()
	if err != nil {
		return nil, err
	}

	var init Node
	if p.tok.Kind == TkAssign {
		p.advance()
		init, err = p.parseExpression(ctx, 0)
		if err != nil {
			return nil, err
		}
	}

	sym, err := ctx.Declare(nameTok.Value, typ)
	if err != nil {
		return nil, p.errf("%v", err)
	}

	promote := false
	if init != nil {
		if init.Type() != typ {
			if typ.IsReal() && init.Type().IsInteger() {
				promote = true
			} else if !vm.CanImplicitlyCastInteger(init.Type(), typ) && init.Type() != typ {
				return nil, p.errf("cannot assign %s to %s", init.Type(), typ)
			}
		}
	}

	return &VarDecl{posInfo: posInfo{row, col}, Sym: sym, Init: init, Promote: promote}, nil
}

func (p *Parser) parseArrayDecl(ctx *Context, row, col int, name string) (Node, error) {
	decl, err := p.parseArrayDeclNoSemi(ctx, row, col, name)
	if err != nil {
		return nil, err
	}
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseArrayDeclNoSemi(ctx *Context, row, col int, name string) (Node, error) {
	if _, err := p.expect(TkLBracket); err != nil {
		return nil, err
	}
	lenTok, err := p.expect(TkIntLit)
	if err != nil {
		return nil, err
	}
	length, err := strconv.Atoi(lenTok.Value)
	if err != nil {
		return nil, p.errf("bad array length")
	}
	if _, err := p.expect(TkRBracket); err != nil {
		return nil, err
	}
	elemType, err := p.parseTypeTag()
	if err != nil {
		return nil, err
	}

	var elements []Node
	if p.tok.Kind == TkAssign {
		p.advance()
		if _, err := p.expect(TkLBrace); err != nil {
			return nil, err
		}
		for p.tok.Kind != TkRBrace {
			if len(elements) > 0 {
				if _, err := p.expect(TkComma); err != nil {
					return nil, err
				}
			}
			el, err := p.parseExpression(ctx, 0)
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
		}
		if _, err := p.expect(TkRBrace); err != nil {
			return nil, err
		}
	}

	sym, err := ctx.DeclareArray(name, elemType, length)
	if err != nil {
		return nil, p.errf("%v", err)
	}
	return &ArrayDecl{posInfo: posInfo{row, col}, Sym: sym, Elements: elements}, nil
}

func (p *Parser) parseIf(ctx *Context) (Node, error) {
	row, col := p.tok.Row, p.tok.Col
	p.advance()
	cond, err := p.parseExpression(ctx, 0)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock(ctx.NewBlockContext())
	if err != nil {
		return nil, err
	}
	var elseNode Node
	if p.tok.Kind == TkElse {
		p.advance()
		if p.tok.Kind == TkIf {
			elseNode, err = p.parseIf(ctx)
		} else {
			elseNode, err = p.parseBlock(ctx.NewBlockContext())
		}
		if err != nil {
			return nil, err
		}
	}
	return &If{posInfo: posInfo{row, col}, Cond: cond, Then: then, Else: elseNode}, nil
}

func (p *Parser) parseFor(ctx *Context) (Node, error) {
	row, col := p.tok.Row, p.tok.Col
	p.advance()

	breakLabel := NewLabel()
	continueLabel := NewLabel()
	// init/condition/post are parsed against a context that does not yet
	// expose break/continue -- a break or continue inside the header
	// expressions themselves is rejected, only the body may use them.
	headerCtx := ctx.NewBlockContext()

	var init, cond, post Node
	var err error
	if p.tok.Kind == TkVar {
		init, err = p.parseVarDeclNoSemi(headerCtx)
		if err != nil {
			return nil, err
		}
	} else if p.tok.Kind != TkSemicolon {
		init, err = p.parseSimpleStatementNoSemi(headerCtx)
		if err != nil {
			return nil, err
		}
	}
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	if p.tok.Kind != TkSemicolon {
		cond, err = p.parseExpression(headerCtx, 0)
		if err != nil {
			return nil, err
		}
	}
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	if p.tok.Kind != TkLBrace {
		post, err = p.parseSimpleStatementNoSemi(headerCtx)
		if err != nil {
			return nil, err
		}
	}

	loopCtx := headerCtx.NewLoopContext(breakLabel, continueLabel)
	body, err := p.parseBlock(loopCtx)
	if err != nil {
		return nil, err
	}

	return &For{
		posInfo: posInfo{row, col}, Init: init, Cond: cond, Post: post, Body: body,
		BreakLabel: breakLabel, ContinueLabel: continueLabel,
	}, nil
}

func (p *Parser) parseBreak(ctx *Context) (Node, error) {
	row, col := p.tok.Row, p.tok.Col
	p.advance()
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	if !ctx.InLoop() {
		return nil, &vm.PositionError{Err: fmt.Errorf("break outside of loop"), Row: row, Col: col}
	}
	return &Break{posInfo: posInfo{row, col}, Target: ctx.BreakLabel()}, nil
}

func (p *Parser) parseContinue(ctx *Context) (Node, error) {
	row, col := p.tok.Row, p.tok.Col
	p.advance()
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	if !ctx.InLoop() {
		return nil, &vm.PositionError{Err: fmt.Errorf("continue outside of loop"), Row: row, Col: col}
	}
	return &Continue{posInfo: posInfo{row, col}, Target: ctx.ContinueLabel()}, nil
}

func (p *Parser) parseReturn(ctx *Context) (Node, error) {
	row, col := p.tok.Row, p.tok.Col
	p.advance()
	fn := ctx.funcCtx
	var value Node
	var err error
	if p.tok.Kind != TkSemicolon {
		value, err = p.parseExpression(ctx, 0)
		if err != nil {
			return nil, err
		}
	}
	if err := p.semicolon(); err != nil {
		return nil, err
	}

	if fn == nil {
		return nil, vm.NewPositionError(fmt.Errorf("return outside function"), row, col)
	}

	promote := false
	if value != nil {
		want := fn.returnType
		if want.IsReal() && value.Type().IsInteger() {
			promote = true
		} else if value.Type() != want && !vm.CanImplicitlyCastInteger(value.Type(), want) {
			return nil, vm.NewPositionError(fmt.Errorf("return type mismatch"), row, col)
		}
	}
	return &Return{posInfo: posInfo{row, col}, Value: value, Promote: promote}, nil
}

// parseSimpleStatement parses an assignment or a bare expression
// statement terminated by a semicolon.
func (p *Parser) parseSimpleStatement(ctx *Context) (Node, error) {
	stmt, err := p.parseSimpleStatementNoSemi(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseSimpleStatementNoSemi(ctx *Context) (Node, error) {
	row, col := p.tok.Row, p.tok.Col
	expr, err := p.parseExpression(ctx, 0)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind == TkAssign {
		p.advance()
		value, err := p.parseExpression(ctx, 0)
		if err != nil {
			return nil, err
		}
		target, err := exprToAssignTarget(expr)
		if err != nil {
			return nil, p.errf("%v", err)
		}
		promote := target.Sym.Type.IsReal() && value.Type().IsInteger()
		return &Assign{posInfo: posInfo{row, col}, Target: target, Value: value, Promote: promote}, nil
	}
	return &ExprStmt{posInfo: posInfo{row, col}, Expr: expr}, nil
}

func exprToAssignTarget(n Node) (AssignTarget, error) {
	switch e := n.(type) {
	case *Ident:
		return AssignTarget{Sym: e.Sym}, nil
	case *IndexExpr:
		return AssignTarget{Sym: e.Sym, Index: e.Index}, nil
	default:
		return AssignTarget{}, fmt.Errorf("invalid assignment target")
	}
}

// parseExpression implements precedence climbing over the binary
// operator table, matching original_source/parser.c's binary_expr.
func (p *Parser) parseExpression(ctx *Context, minPrec int) (Node, error) {
	left, err := p.parseUnary(ctx)
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := precedence[p.tok.Kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		op := p.tok.Kind
		row, col := p.tok.Row, p.tok.Col
		p.advance()
		right, err := p.parseExpression(ctx, prec+1)
		if err != nil {
			return nil, err
		}
		left, err = makeBinary(row, col, op, left, right)
		if err != nil {
			return nil, err
		}
	}
}

func makeBinary(row, col int, op TokenKind, left, right Node) (Node, error) {
	if isLogical(op) {
		if !left.Type().IsBool() || !right.Type().IsBool() {
			return nil, vm.NewPositionError(fmt.Errorf("operands of && and || must be bool"), row, col)
		}
		return &Binary{posInfo: posInfo{row, col}, Op: op, Left: left, Right: right, Typ: vm.TagBool}, nil
	}

	lt, rt := left.Type(), right.Type()
	leftPromote, rightPromote := false, false
	if lt.IsReal() && rt.IsInteger() {
		rightPromote = true
		rt = lt
	} else if rt.IsReal() && lt.IsInteger() {
		leftPromote = true
		lt = rt
	} else if lt != rt {
		if lt.IsInteger() && rt.IsInteger() {
			// widened below by MixNumericalTypes
		} else {
			return nil, vm.NewPositionError(fmt.Errorf("type mismatch in binary expression"), row, col)
		}
	}

	if isComparison(op) {
		return &Binary{
			posInfo: posInfo{row, col}, Op: op, Left: left, Right: right,
			Typ: vm.TagBool, LeftPromote: leftPromote, RightPromote: rightPromote,
		}, nil
	}

	resultType := vm.MixNumericalTypes(lt, rt)
	return &Binary{
		posInfo: posInfo{row, col}, Op: op, Left: left, Right: right,
		Typ: resultType, LeftPromote: leftPromote, RightPromote: rightPromote,
	}, nil
}

func isUnaryOp(k TokenKind) bool { return k == TkMinus || k == TkBang || k == TkTilde }

func (p *Parser) parseUnary(ctx *Context) (Node, error) {
	if isUnaryOp(p.tok.Kind) {
		op := p.tok.Kind
		row, col := p.tok.Row, p.tok.Col
		p.advance()
		operand, err := p.parseUnary(ctx)
		if err != nil {
			return nil, err
		}
		typ := operand.Type()
		if op == TkBang && !typ.IsBool() {
			return nil, p.errf("! requires a bool operand")
		}
		return &Unary{posInfo: posInfo{row, col}, Op: op, Operand: operand, Typ: typ}, nil
	}
	return p.parseFactor(ctx)
}

func (p *Parser) parseFactor(ctx *Context) (Node, error) {
	row, col := p.tok.Row, p.tok.Col
	switch p.tok.Kind {
	case TkIntLit:
		val := p.tok.Value
		p.advance()
		return parseIntLiteral(row, col, val)
	case TkFloatLit:
		val := p.tok.Value
		p.advance()
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, p.errf("bad float literal")
		}
		return &FloatLit{posInfo: posInfo{row, col}, Value: f, Typ: vm.TagF64}, nil
	case TkStrLit:
		val := p.tok.Value
		p.advance()
		return &StrLit{posInfo: posInfo{row, col}, Value: val}, nil
	case TkTrue:
		p.advance()
		return &BoolLit{posInfo: posInfo{row, col}, Value: true}, nil
	case TkFalse:
		p.advance()
		return &BoolLit{posInfo: posInfo{row, col}, Value: false}, nil
	case TkLParen:
		p.advance()
		expr, err := p.parseExpression(ctx, 0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TkRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case TkIdent:
		return p.parseIdentOrCall(ctx, row, col)
	case TkI8, TkU8, TkI16, TkU16, TkI32, TkU32, TkI64, TkU64:
		// integer type keywords double as the cast builtins' names
		name := p.tok.Value
		p.advance()
		if p.tok.Kind != TkLParen {
			return nil, p.errf("unexpected token in expression")
		}
		return p.parseCall(ctx, row, col, name)
	default:
		return nil, p.errf("unexpected token in expression")
	}
}

func parseIntLiteral(row, col int, text string) (Node, error) {
	suffix := ""
	for _, w := range []string{"i64", "u64", "i32", "u32", "i16", "u16", "i8", "u8"} {
		if len(text) > len(w) && text[len(text)-len(w):] == w {
			suffix = w
			text = text[:len(text)-len(w)]
			break
		}
	}
	val, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		uval, uerr := strconv.ParseUint(text, 0, 64)
		if uerr != nil {
			return nil, vm.NewPositionError(fmt.Errorf("bad integer literal %q", text), row, col)
		}
		val = int64(uval)
	}

	typ := vm.TagI64
	if suffix != "" {
		for name, tag := range castBuiltins {
			if name == suffix {
				typ = tag
			}
		}
	} else {
		// No suffix: infer the minimum width that holds the value,
		// defaulting to i64 for anything that needs the full range --
		// this resolves the open question left by
		// original_source/token.h's per-width TK_INT8..TK_UINT64 token
		// split, whose lexer-side determination logic wasn't part of
		// the retrieved sources.
		typ = minimumIntegerType(val)
	}
	return &IntLit{posInfo: posInfo{row, col}, Value: val, Typ: typ}, nil
}

func minimumIntegerType(v int64) vm.TypeTag {
	switch {
	case v >= -128 && v <= 127:
		return vm.TagI8
	case v >= -32768 && v <= 32767:
		return vm.TagI16
	case v >= -2147483648 && v <= 2147483647:
		return vm.TagI32
	default:
		return vm.TagI64
	}
}

func (p *Parser) parseIdentOrCall(ctx *Context, row, col int) (Node, error) {
	name := p.tok.Value
	p.advance()

	if p.tok.Kind == TkLParen {
		return p.parseCall(ctx, row, col, name)
	}

	sym, ok := ctx.Resolve(name)
	if !ok {
		return nil, vm.NewPositionError(fmt.Errorf("undeclared identifier %q", name), row, col)
	}

	if p.tok.Kind == TkLBracket {
		p.advance()
		idx, err := p.parseExpression(ctx, 0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TkRBracket); err != nil {
			return nil, err
		}
		if sym.Kind != SymArray {
			return nil, vm.NewPositionError(fmt.Errorf("%q is not an array", name), row, col)
		}
		return &IndexExpr{posInfo: posInfo{row, col}, Sym: sym, Index: idx}, nil
	}

	return &Ident{posInfo: posInfo{row, col}, Sym: sym}, nil
}

func (p *Parser) parseCall(ctx *Context, row, col int, name string) (Node, error) {
	p.advance() // (
	var args []Node
	for p.tok.Kind != TkRParen {
		if len(args) > 0 {
			if _, err := p.expect(TkComma); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression(ctx, 0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expect(TkRParen); err != nil {
		return nil, err
	}

	if sig, ok := LookupBuiltin(name); ok {
		if len(args) != sig.Arity {
			return nil, vm.NewPositionError(fmt.Errorf("%s expects %d arguments", name, sig.Arity), row, col)
		}
		for _, a := range args {
			if !sig.Accepts(a.Type()) {
				return nil, vm.NewPositionError(fmt.Errorf("%s: argument type %s not accepted", name, a.Type()), row, col)
			}
		}
		return &BuiltinCall{posInfo: posInfo{row, col}, Name: name, Args: args, Typ: sig.Result(args[0].Type())}, nil
	}

	sym, ok := ctx.Resolve(name)
	if !ok || sym.Kind != SymFunc {
		return nil, vm.NewPositionError(fmt.Errorf("undeclared function %q", name), row, col)
	}
	if len(args) != len(sym.Params) {
		return nil, vm.NewPositionError(fmt.Errorf("%s expects %d arguments", name, len(sym.Params)), row, col)
	}
	for i, a := range args {
		if a.Type() != sym.Params[i] && !vm.CanImplicitlyCastInteger(a.Type(), sym.Params[i]) {
			return nil, vm.NewPositionError(fmt.Errorf("argument %d type mismatch in call to %s", i, name), row, col)
		}
	}
	return &FuncCall{posInfo: posInfo{row, col}, Sym: sym, Args: args}, nil
}
