package chatbot

import "strings"

// 分类兜底与默认回答
const (
	greetingResponse = `Hello! I'm your AHD clinical assistant. I can help you with:

- **Basic definitions** (HIV, AHD, CD4, viral load, ART)
- **Clinical guidelines** and protocols
- **Treatment recommendations**
- **Monitoring schedules**
- **Prevention strategies**

What would you like to know about today?`

	thanksResponse = "You're welcome! I'm here to help with any other HIV/AHD questions you have."

	whoStageResponse = `**WHO Clinical Staging System:**

**Stage 1**: Asymptomatic or persistent generalized lymphadenopathy
**Stage 2**: Moderate unexplained weight loss, recurrent respiratory infections, herpes zoster
**Stage 3**: Severe weight loss, chronic diarrhea, persistent fever, pulmonary TB, severe bacterial infections
**Stage 4**: HIV wasting syndrome, PCP, toxoplasmosis, cryptococcosis, extrapulmonary TB, Kaposi sarcoma

*Stages 3 and 4 indicate Advanced HIV Disease*`

	sideEffectsResponse = `**Common ART Side Effects:**

**DTG (Dolutegravir):** Insomnia, dizziness, headache (usually resolve in weeks)
**TDF (Tenofovir):** Renal impairment, bone density loss
**EFV (Efavirenz):** CNS effects (dizziness, dreams), rash
**NVP (Nevirapine):** Hepatotoxicity, severe rash

**Management:** Most side effects improve with time. Consult clinician for persistent or severe effects.`

	defaultResponse = `I want to make sure I understand your question correctly. I specialize in HIV and Advanced HIV Disease topics like:

- **Basic concepts**: What is HIV? What is AHD? What are CD4 cells?
- **Clinical guidelines**: CD4 monitoring, viral load targets, ART regimens
- **AHD management**: Screening, prevention, treatment protocols
- **WHO staging** and opportunistic infections

Could you rephrase your question or ask about one of these specific topics?`

	// WelcomeMessage 会话初始/清空后的欢迎语
	WelcomeMessage = "Hello! I'm your AHD clinical assistant. I can help with **basic definitions** and **clinical guidelines** for HIV and Advanced HIV Disease. What would you like to know?"
)

var greetingWords = []string{"hello", "hi", "hey", "greetings"}

var sideEffectPhrases = []string{"side effect", "adverse", "complication"}

// Engine 规则问答引擎。
// 单步无状态：每次调用独立，不读取会话历史（历史仅用于展示）。
type Engine struct {
	entries []KnowledgeEntry
}

// NewEngine 创建规则引擎（使用内置知识库）
func NewEngine() *Engine {
	return &Engine{entries: knowledgeBase}
}

// NewEngineWithEntries 使用自定义条目表（测试用）
func NewEngineWithEntries(entries []KnowledgeEntry) *Engine {
	return &Engine{entries: entries}
}

// Respond 对输入做规则匹配：
//  1. 归一化（小写、去首尾空白）；
//  2. 精确匹配：输入与某条目的关键词完全相等时立即返回，
//     保证定义类问法不被子串规则抢走（如 "what is cd4" 不落到 CD4 监测条目）；
//  3. 子串匹配：按声明顺序取第一个命中条目（先声明者胜）；
//  4. 分类兜底：问候 / 致谢 / WHO 分期 / 药物副作用；
//  5. 固定默认回答。
func (e *Engine) Respond(raw string) string {
	input := strings.ToLower(strings.TrimSpace(raw))

	for _, entry := range e.entries {
		for _, kw := range entry.Keywords {
			if input == kw {
				return entry.Response
			}
		}
	}

	for _, entry := range e.entries {
		for _, kw := range entry.Keywords {
			if strings.Contains(input, kw) {
				return entry.Response
			}
		}
	}

	return e.fallback(input)
}

// fallback 关键词表未命中时的分类兜底链
func (e *Engine) fallback(input string) string {
	for _, w := range greetingWords {
		if strings.Contains(input, w) {
			return greetingResponse
		}
	}

	if strings.Contains(input, "thank") {
		return thanksResponse
	}

	if strings.Contains(input, "who stage") {
		return whoStageResponse
	}

	for _, p := range sideEffectPhrases {
		if strings.Contains(input, p) {
			return sideEffectsResponse
		}
	}

	return defaultResponse
}

// Entries 返回知识库条目（只读视图，供话题列表接口使用）
func (e *Engine) Entries() []KnowledgeEntry {
	return e.entries
}

// QuickActions 固定快捷提问，顺序与前端按钮一致
func QuickActions() []string {
	return []string{"What is HIV?", "What is AHD?", "What is CD4?"}
}
