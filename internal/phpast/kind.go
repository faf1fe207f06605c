package phpast

// Kind identifies the syntactic category of a Node. The catalog here is a
// representative subset of PHP's full non-terminal vocabulary (see
// DESIGN.md's grammar-coverage scope note): every category named in the
// specification's node-kind list is present, but not every individual
// construct within each category.
type Kind string

const (
	KindProgram       Kind = "program"
	KindStatementList Kind = "statement-list"
	KindStatement     Kind = "statement"
	KindBlock         Kind = "block"

	// statements
	KindConditionList  Kind = "condition-list"
	KindIf             Kind = "if"
	KindElseif         Kind = "elseif"
	KindElse           Kind = "else"
	KindWhile          Kind = "while"
	KindDoWhile        Kind = "do-while"
	KindFor            Kind = "for"
	KindForHeader      Kind = "for-header"
	KindForeach        Kind = "foreach"
	KindSwitch         Kind = "switch"
	KindCase           Kind = "case"
	KindDefault        Kind = "default"
	KindBreak          Kind = "break"
	KindContinue       Kind = "continue"
	KindReturn         Kind = "return"
	KindEcho           Kind = "echo"
	KindGlobalStmt     Kind = "global"
	KindStaticVarStmt  Kind = "static-var"
	KindThrow          Kind = "throw"
	KindTry            Kind = "try"
	KindCatch          Kind = "catch"
	KindFinally        Kind = "finally"
	KindUnset          Kind = "unset"
	KindGoto           Kind = "goto"
	KindLabel          Kind = "label"
	KindInlineHTML     Kind = "inline-html"

	// declarations
	KindFunctionDecl       Kind = "function-declaration"
	KindClassDecl          Kind = "class-declaration"
	KindInterfaceDecl      Kind = "interface-declaration"
	KindTraitDecl          Kind = "trait-declaration"
	KindPropertyDecl       Kind = "property-declaration"
	KindMethodDecl         Kind = "method-declaration"
	KindClassConstDecl     Kind = "class-constant-declaration"
	KindTraitUse           Kind = "trait-use"
	KindExtendsList        Kind = "extends-list"
	KindImplementsList     Kind = "implements-list"
	KindDeclarationParamList Kind = "declaration-parameter-list"
	KindDeclarationParam   Kind = "declaration-parameter"
	KindDeclarationReturn  Kind = "declaration-return"
	KindCallParamList      Kind = "call-parameter-list"
	KindTypeName           Kind = "type-name"
	KindNullableType       Kind = "nullable-type"

	// expressions
	KindBinaryExpr      Kind = "binary-expression"
	KindUnaryExpr       Kind = "unary-expression"
	KindTernaryExpr     Kind = "ternary-expression"
	KindCastExpr        Kind = "cast-expression"
	KindNewExpr         Kind = "new-expression"
	KindInstanceofExpr  Kind = "instanceof-expression"
	KindAssignmentExpr  Kind = "assignment-expression"
	KindAssignmentList  Kind = "assignment-list"
	KindList            Kind = "list"
	KindFunctionCall    Kind = "function-call"
	KindMethodCall      Kind = "method-call"
	KindObjectProperty  Kind = "object-property-access"
	KindClassStaticAccess Kind = "class-static-access"
	KindIndexAccess     Kind = "index-access"
	KindVariable        Kind = "variable"
	KindVariableVariable Kind = "variable-variable"
	KindArrayLiteral    Kind = "array-literal"
	KindArrayValueList  Kind = "array-value-list"
	KindArrayValue      Kind = "array-value"
	KindStringScalar    Kind = "string-scalar"
	KindNumericScalar   Kind = "numeric-scalar"
	KindMagicScalar     Kind = "magic-scalar"
	KindHeredoc         Kind = "heredoc"
	KindBackticksExpr   Kind = "backticks-expression"
	KindConcatenationList Kind = "concatenation-list"
	KindLexicalVarList  Kind = "lexical-variable-list"
	KindYield           Kind = "yield"
	KindIncludeFile     Kind = "include-file"
	KindClosure         Kind = "closure"
	KindArrowFunction   Kind = "arrow-function"

	// infrastructure / leaves
	KindSymbolName Kind = "symbol-name"
	KindClassName  Kind = "class-name"
	KindOperator   Kind = "operator"
	KindIdentifier Kind = "identifier"
)
