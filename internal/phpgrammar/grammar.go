// Package phpgrammar defines the context-free grammar for the supported
// subset of PHP and the tree-construction pass that turns a raw parse tree
// into a phpast.Tree.
//
// Coverage is a representative subset, not the whole of PHP: it spans every
// statement and expression category the node-kind catalog names, but not
// every individual construct within each category (type-hinted parameters,
// namespaces, attributes and first-class enum syntax are left out). See
// DESIGN.md for the grounds of that scope decision.
package phpgrammar

import (
	"sync"

	"github.com/dekarrin/phpsyn/internal/ictiobus"
	"github.com/dekarrin/phpsyn/internal/ictiobus/grammar"
)

// source is the textual grammar description, in the mini-DSL implemented by
// grammar.Parse: "NAME -> alt1a alt1b | alt2a | ε" per line, continuation
// lines begin with "|". A symbol beginning with an uppercase letter is a
// nonterminal; everything else is a terminal, registered with a default
// token class whose ID is its lowercased spelling. Terminal spellings here
// are chosen to equal the phplex token kind IDs exactly, since that id is
// what the LR driver matches against at parse time.
//
// Two constructs that real PHP allows are deliberately NOT expressed as
// separate productions because the underlying LALR(1) engine treats every
// shift/reduce and reduce/reduce conflict as a hard build error with no
// precedence-based resolution (see internal/ictiobus/parse/lraction.go):
//
//   - if/elseif/else uses PHP's real flat grammar shape (a gated
//     ElseifList/ElseOpt) rather than a nested "else (if ...)" shape, which
//     would reintroduce the classic dangling-else ambiguity.
//   - method calls and static calls are not their own productions; a call
//     is always the generic postfix "( args )" applied to whatever
//     PostfixExpr precedes it. Composing $obj->method() as "property access,
//     then call" instead of a dedicated "method call" production avoids a
//     shift/reduce conflict between the two ways of parsing the same text.
//     Transform re-derives the method-call/static-call node kind by looking
//     at what a call postfix was applied to.
//
// Casts ("(int)") are recognized as a single token by the lexer rather than
// as the production "( ident )", for the same reason real PHP lexers do it:
// a pure context-free grammar can't distinguish a cast from a parenthesized
// expression with one token of lookahead.
//
// The keyword operators "and"/"xor"/"or" sit in their own tier below
// AssignExpr (Expr -> Expr or WeakXorExpr -> WeakXorExpr xor WeakAndExpr ->
// WeakAndExpr and AssignExpr), the same relative order PHP itself uses
// (or weakest, then xor, then and, all weaker than "="), rather than being
// folded into the &&/|| tier: "$a = true and false;" must parse as
// "($a = true) and false", not "$a = (true and false)".
const source = `
Program -> StatementList

StatementList -> StatementList Statement | ε

Statement -> ExprStmt | IfStmt | WhileStmt | DoWhileStmt | ForStmt | ForeachStmt
           | SwitchStmt | BreakStmt | ContinueStmt | ReturnStmt | EchoStmt
           | GlobalStmt | StaticVarStmt | ThrowStmt | TryStmt | UnsetStmt
           | Block | FunctionDecl | ClassDecl | InterfaceDecl | TraitDecl
           | inline_html | semi

ExprStmt -> Expr semi

Block -> lbrace StatementList rbrace

IfStmt -> if lparen Expr rparen Statement ElseifList ElseOpt
ElseifList -> ElseifList elseif lparen Expr rparen Statement | ε
ElseOpt -> else Statement | ε

WhileStmt -> while lparen Expr rparen Statement
DoWhileStmt -> do Statement while lparen Expr rparen semi

ForStmt -> for lparen ForExprOpt semi ForExprOpt semi ForExprOpt rparen Statement
ForExprOpt -> ExprList | ε
ExprList -> ExprList comma Expr | Expr

ForeachStmt -> foreach lparen Expr as ForeachTarget rparen Statement
ForeachTarget -> Expr double_arrow Expr | Expr

SwitchStmt -> switch lparen Expr rparen lbrace CaseList rbrace
CaseList -> CaseList CaseClause | ε
CaseClause -> case Expr colon StatementList | default colon StatementList

BreakStmt -> break semi | break lnumber semi
ContinueStmt -> continue semi | continue lnumber semi
ReturnStmt -> return semi | return Expr semi
EchoStmt -> echo ExprList semi
GlobalStmt -> global VarList semi
VarList -> VarList comma variable | variable
StaticVarStmt -> static StaticVarDeclList semi
StaticVarDeclList -> StaticVarDeclList comma StaticVarDecl | StaticVarDecl
StaticVarDecl -> variable | variable assign Expr

ThrowStmt -> throw Expr semi
TryStmt -> try Block CatchList FinallyOpt
CatchList -> CatchList CatchClause | ε
CatchClause -> catch lparen ident variable rparen Block | catch lparen ident rparen Block
FinallyOpt -> finally Block | ε

UnsetStmt -> unset lparen ExprList rparen semi

FunctionDecl -> function ident lparen ParamListOpt rparen Block
             | function amp ident lparen ParamListOpt rparen Block

ParamListOpt -> ParamList | ε
ParamList -> ParamList comma Param | Param
Param -> variable | variable assign Expr | amp variable | ellipsis variable

ClassDecl -> ClassModifiers class ident ExtendsOpt ImplementsOpt lbrace ClassMemberList rbrace
ClassModifiers -> ClassModifiers ClassModifier | ε
ClassModifier -> abstract | final
ExtendsOpt -> extends ident | ε
ImplementsOpt -> implements TypeNameCommaList | ε
TypeNameCommaList -> TypeNameCommaList comma ident | ident

InterfaceDecl -> interface ident InterfaceExtendsOpt lbrace ClassMemberList rbrace
InterfaceExtendsOpt -> extends TypeNameCommaList | ε

TraitDecl -> trait ident lbrace ClassMemberList rbrace

ClassMemberList -> ClassMemberList ClassMember | ε
ClassMember -> PropertyDecl | MethodDecl | ClassConstDecl | TraitUseDecl

MemberModifiers -> MemberModifiers MemberModifier | ε
MemberModifier -> public | private | protected | static | abstract | final | readonly | var

PropertyDecl -> MemberModifiers variable semi | MemberModifiers variable assign Expr semi
MethodDecl -> MemberModifiers function ident lparen ParamListOpt rparen Block
           | MemberModifiers function amp ident lparen ParamListOpt rparen Block
           | MemberModifiers function ident lparen ParamListOpt rparen semi
ClassConstDecl -> MemberModifiers const ident assign Expr semi
TraitUseDecl -> use TypeNameCommaList semi

Expr -> Expr or WeakXorExpr | WeakXorExpr

WeakXorExpr -> WeakXorExpr xor WeakAndExpr | WeakAndExpr

WeakAndExpr -> WeakAndExpr and AssignExpr | AssignExpr

AssignExpr -> TernaryExpr
            | list lparen AssignTargetList rparen assign AssignExpr
            | PostfixExpr assign AssignExpr
            | PostfixExpr plus_assign AssignExpr
            | PostfixExpr minus_assign AssignExpr
            | PostfixExpr star_assign AssignExpr
            | PostfixExpr slash_assign AssignExpr
            | PostfixExpr dot_assign AssignExpr
            | PostfixExpr percent_assign AssignExpr
            | PostfixExpr pow_assign AssignExpr
            | PostfixExpr amp_assign AssignExpr
            | PostfixExpr pipe_assign AssignExpr
            | PostfixExpr caret_assign AssignExpr
            | PostfixExpr shl_assign AssignExpr
            | PostfixExpr shr_assign AssignExpr
            | PostfixExpr coalesce_assign AssignExpr

AssignTargetList -> AssignTargetList comma PostfixExpr | PostfixExpr

TernaryExpr -> CoalesceExpr question Expr colon TernaryExpr
             | CoalesceExpr question colon TernaryExpr
             | CoalesceExpr

CoalesceExpr -> LogicalOrExpr coalesce CoalesceExpr | LogicalOrExpr

LogicalOrExpr -> LogicalOrExpr or_or LogicalAndExpr | LogicalAndExpr
LogicalAndExpr -> LogicalAndExpr and_and EqualityExpr | EqualityExpr

EqualityExpr -> EqualityExpr eq RelationalExpr | EqualityExpr identical RelationalExpr
              | EqualityExpr noteq RelationalExpr | EqualityExpr notidentical RelationalExpr
              | RelationalExpr

RelationalExpr -> RelationalExpr lt ConcatExpr | RelationalExpr le ConcatExpr
                 | RelationalExpr gt ConcatExpr | RelationalExpr ge ConcatExpr
                 | RelationalExpr spaceship ConcatExpr
                 | ConcatExpr

ConcatExpr -> ConcatExpr dot AdditiveExpr | AdditiveExpr

AdditiveExpr -> AdditiveExpr plus MultiplicativeExpr | AdditiveExpr minus MultiplicativeExpr | MultiplicativeExpr

MultiplicativeExpr -> MultiplicativeExpr star InstanceofExpr | MultiplicativeExpr slash InstanceofExpr
                     | MultiplicativeExpr percent InstanceofExpr | InstanceofExpr

InstanceofExpr -> InstanceofExpr instanceof UnaryExpr | UnaryExpr

UnaryExpr -> not UnaryExpr | minus UnaryExpr | plus UnaryExpr | tilde UnaryExpr
           | inc UnaryExpr | dec UnaryExpr | at UnaryExpr
           | cast UnaryExpr
           | PowExpr

PowExpr -> PostfixExpr pow UnaryExpr | PostfixExpr

PostfixExpr -> PostfixExpr inc | PostfixExpr dec
             | PostfixExpr lbracket Expr rbracket | PostfixExpr lbracket rbracket
             | PostfixExpr arrow ident | PostfixExpr nullsafe_arrow ident
             | PostfixExpr dcolon ident | PostfixExpr dcolon variable
             | PostfixExpr lparen CallArgsOpt rparen
             | PrimaryExpr

CallArgsOpt -> ExprList | ε

ClassRef -> ident | static | variable

PrimaryExpr -> variable | lnumber | dnumber | true | false | null
             | string_lit | DoubleQuotedExpr | HeredocExpr | BacktickExpr
             | ArrayLiteral | lparen Expr rparen | ident
             | new ClassRef lparen CallArgsOpt rparen
             | new class lparen CallArgsOpt rparen ExtendsOpt ImplementsOpt lbrace ClassMemberList rbrace
             | new class ExtendsOpt ImplementsOpt lbrace ClassMemberList rbrace
             | clone PrimaryExpr
             | yield | yield Expr | yield Expr double_arrow Expr
             | include Expr | include_once Expr | require Expr | require_once Expr
             | function lparen ParamListOpt rparen UseClauseOpt Block
             | static function lparen ParamListOpt rparen UseClauseOpt Block
             | fn lparen ParamListOpt rparen double_arrow Expr
             | static fn lparen ParamListOpt rparen double_arrow Expr

UseClauseOpt -> use lparen VarList rparen | ε

DoubleQuotedExpr -> dquote StringPartList dquote
StringPartList -> StringPartList StringPartItem | ε
StringPartItem -> string_part | variable

HeredocExpr -> heredoc_open StringPartList heredoc_close | heredoc_open nowdoc_body heredoc_close

BacktickExpr -> backtick StringPartList backtick

ArrayLiteral -> array lparen ArrayItemsOpt rparen | lbracket ArrayItemsOpt rbracket
ArrayItemsOpt -> ArrayItemList | ε
ArrayItemList -> ArrayItemList comma ArrayItem | ArrayItem
ArrayItem -> Expr double_arrow Expr | Expr
`

var (
	builtOnce sync.Once
	builtG    grammar.Grammar
	builtErr  error
)

// Build parses the grammar source and validates it. The result is cached;
// every caller shares one Grammar.
func Build() (grammar.Grammar, error) {
	builtOnce.Do(func() {
		builtG, builtErr = grammar.Parse(source)
		if builtErr != nil {
			return
		}
		builtErr = builtG.Validate()
	})
	return builtG, builtErr
}

// NewParser builds the grammar and constructs an LALR(1) parser over it.
func NewParser() (ictiobus.Parser, error) {
	g, err := Build()
	if err != nil {
		return nil, err
	}
	return ictiobus.NewLALR1Parser(g)
}
