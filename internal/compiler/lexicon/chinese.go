package lexicon

import "github.com/aster-lang/aster/internal/compiler/tokenkind"

// ChineseSimplified returns the built-in zh-CN lexicon.
func ChineseSimplified() *Lexicon {
	keywords := map[tokenkind.Kind]string{
		tokenkind.KindModule: "模块", tokenkind.KindUse: "使用", tokenkind.KindAs: "作为",

		tokenkind.KindData: "数据", tokenkind.KindEnum: "枚举",
		tokenkind.KindTypeAlias: "类型", tokenkind.KindHas: "拥有",

		tokenkind.KindRule: "规则", tokenkind.KindTo: "要", tokenkind.KindGiven: "给定",
		tokenkind.KindWith: "与", tokenkind.KindProduce: "产生", tokenkind.KindFunc: "函数",

		tokenkind.KindIf: "如果", tokenkind.KindOtherwise: "否则", tokenkind.KindMatch: "匹配",
		tokenkind.KindWhen: "当", tokenkind.KindReturn: "返回",

		tokenkind.KindLet: "令", tokenkind.KindBe: "为", tokenkind.KindSet: "设置", tokenkind.KindOf: "的",

		tokenkind.KindTrue: "真", tokenkind.KindFalse: "假",
		tokenkind.KindAnd: "且", tokenkind.KindOr: "或", tokenkind.KindNot: "非",

		tokenkind.KindPlus: "加", tokenkind.KindMinus: "减",
		tokenkind.KindTimes: "乘以", tokenkind.KindDividedBy: "除以",

		tokenkind.KindLessThan: "小于", tokenkind.KindGreaterThan: "大于",
		tokenkind.KindEqualsTo: "等于", tokenkind.KindUnder: "低于", tokenkind.KindOver: "高于",

		tokenkind.KindOk: "正确", tokenkind.KindErr: "错误", tokenkind.KindSome: "某值", tokenkind.KindNone: "无值",
		tokenkind.KindList: "列表", tokenkind.KindMap: "映射",
		tokenkind.KindMaybe: "可能", tokenkind.KindOption: "选项", tokenkind.KindResult: "结果",

		tokenkind.KindNull: "空",

		tokenkind.KindInt: "整数", tokenkind.KindLong: "长整数", tokenkind.KindFloat: "浮点数",
		tokenkind.KindDouble: "双精度数", tokenkind.KindText: "文本", tokenkind.KindBoolType: "布尔",
		tokenkind.KindDateTime: "日期时间",

		tokenkind.KindPure: "纯", tokenkind.KindCPU: "计算", tokenkind.KindIO: "输入输出", tokenkind.KindAsync: "异步",

		tokenkind.KindWorkflow: "工作流", tokenkind.KindStep: "步骤", tokenkind.KindCompensate: "补偿",

		tokenkind.KindStart: "启动", tokenkind.KindWait: "等待", tokenkind.KindFor: "以",

		tokenkind.KindPerforms: "执行", tokenkind.KindCapability: "能力", tokenkind.KindSensitive: "敏感",
	}

	punct := Punctuation{
		StatementEnd:     "。",
		ListSeparator:    "，",
		EnumSeparator:    "，",
		BlockStart:       "：",
		StringQuoteOpen:  "「",
		StringQuoteClose: "」",
	}

	canon := CanonConfig{
		FullWidthToHalf: true,
		WhitespaceMode:  WhitespaceChinese,
		RemoveArticles:  false,
		PreTransformers: []Transformer{
			{Name: "chinese-possessive", Rule: &RegexRule{
				Name:        "chinese-possessive",
				Pattern:     `([A-Za-z0-9_\x{4e00}-\x{9fff}]+)\s*的\s*([A-Za-z0-9_\x{4e00}-\x{9fff}]+)`,
				Replacement: "$1.$2",
			}},
			{Name: "chinese-punctuation-fold", Rule: &RegexRule{
				Name:        "chinese-punctuation-fold",
				Pattern:     `，`,
				Replacement: ", ",
			}},
		},
	}

	msgs := Messages{
		UnexpectedToken:    "意外的标记 {token}",
		ExpectedKeyword:    "期望 {expected}，但发现 {found}",
		UndefinedVariable:  "未定义的变量 {name}",
		TypeMismatch:       "期望类型 {expected}，实际为 {actual}",
		UnterminatedString: "字符串字面量未终止",
		InvalidIndentation: "第 {line} 行缩进无效",
	}

	lex, err := NewLexicon("zh-CN", "简体中文", LTR, keywords, punct, canon, msgs)
	if err != nil {
		panic(err)
	}
	return lex
}
