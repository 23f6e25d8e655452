package chatbot

// KnowledgeEntry 知识库条目（关键词集 -> 固定回答）
type KnowledgeEntry struct {
	TopicID  string
	Response string
	Keywords []string
}

// knowledgeBase 静态知识库。
// 条目为有序列表，子串匹配按声明顺序取第一个命中；
// 顺序即裁决规则，调整顺序会改变可观察行为，勿随意重排。
var knowledgeBase = []KnowledgeEntry{
	{
		TopicID: "what-is-ahd",
		Response: `**Advanced HIV Disease (AHD) Definition:**

AHD refers to HIV infection that has progressed to a severe stage, specifically defined as:
- **CD4 count below 200 cells/mm3** **OR**
- **WHO Clinical Stage 3 or 4 disease** regardless of CD4 count

**Key Characteristics:**
- Severe immunodeficiency
- High risk of opportunistic infections
- Requires urgent intervention and close monitoring`,
		Keywords: []string{"what is ahd", "define ahd", "ahd definition", "meaning of ahd"},
	},
	{
		TopicID: "what-is-hiv",
		Response: `**HIV (Human Immunodeficiency Virus) Definition:**

HIV is a virus that attacks the body's immune system, specifically the CD4 cells (T cells), which help the immune system fight off infections.

**Key Facts:**
- **Transmission**: Through bodily fluids (blood, semen, vaginal fluids, breast milk)
- **Progression**: Without treatment, leads to AIDS
- **Treatment**: ART (Antiretroviral Therapy) can control the virus
- **Prevention**: Condoms, PrEP, PEP, safe injection practices`,
		Keywords: []string{"what is hiv", "define hiv", "hiv definition", "what does hiv mean"},
	},
	{
		TopicID: "what-is-cd4",
		Response: `**CD4 Cell Definition:**

CD4 cells (also called T-helper cells) are white blood cells that play a crucial role in the immune system. They coordinate the body's response to infections.

**In HIV Context:**
- **Normal range**: 500-1500 cells/mm3
- **HIV impact**: Virus destroys CD4 cells
- **Monitoring**: CD4 count indicates immune system health
- **AHD threshold**: <200 cells/mm3 indicates advanced disease`,
		Keywords: []string{"what is cd4", "define cd4", "cd4 definition", "what are cd4 cells"},
	},
	{
		TopicID: "what-is-viral-load",
		Response: `**Viral Load Definition:**

Viral load refers to the amount of HIV virus in a milliliter of blood.

**Clinical Significance:**
- **Measurement**: Copies per milliliter (copies/mL)
- **Suppressed**: <1000 copies/mL (treatment success)
- **Unsuppressed**: >=1000 copies/mL (needs intervention)
- **Monitoring**: Key indicator of treatment effectiveness`,
		Keywords: []string{"what is viral load", "define viral load", "viral load definition"},
	},
	{
		TopicID: "what-is-art",
		Response: `**ART (Antiretroviral Therapy) Definition:**

ART is the combination of medications used to treat HIV infection. It doesn't cure HIV but controls the virus, allowing people to live long, healthy lives.

**Key Principles:**
- **Combination therapy**: Usually 3 drugs from different classes
- **Adherence**: Must be taken consistently
- **Goals**: Suppress viral load, preserve CD4 cells, prevent transmission
- **Initiation**: Recommended for all people with HIV`,
		Keywords: []string{"what is art", "define art", "art definition", "what does art mean"},
	},
	{
		TopicID: "cd4-guidelines",
		Response: `**CD4 Count Guidelines:**

**Interpretation:**
- **>500 cells/mm3**: Normal immune function
- **350-500 cells/mm3**: Mild immunodeficiency
- **200-350 cells/mm3**: Advanced immunodeficiency
- **<200 cells/mm3**: Severe immunodeficiency (AHD criteria)
- **<100 cells/mm3**: Critical risk for OIs

**Monitoring Frequency:**
- At ART initiation
- 3 months after starting ART
- Every 6-12 months if stable`,
		Keywords: []string{"cd4", "t-cell", "immune", "cell count", "cd4 count"},
	},
	{
		TopicID: "viral-load-guidelines",
		Response: `**Viral Load Monitoring Guidelines:**

**Classification:**
- **Suppressed**: <1000 copies/mL
- **Unsuppressed**: >=1000 copies/mL
- **Virological failure**: >1000 copies/mL after 6 months of ART

**Monitoring Schedule:**
- At ART initiation
- 3 months after starting ART
- Every 6 months if suppressed
- Every 3 months if unsuppressed`,
		Keywords: []string{"viral load", "vl", "suppressed", "unsuppressed", "virological"},
	},
	{
		TopicID: "ahd-management",
		Response: `**AHD Management Protocol:**

**Urgent Actions:**
1. **Rapid ART initiation** (within 7 days, same day if possible)
2. **Comprehensive OI screening** (TB, cryptococcus, etc.)
3. **Preventive therapy** (Cotrimoxazole, fluconazole if CD4<100)
4. **Enhanced adherence support**

**Key Components:**
- Close clinical monitoring (2-4 week follow-up)
- Psychosocial support
- Treatment literacy
- Comorbidity management`,
		Keywords: []string{"ahd management", "manage ahd", "treat ahd", "ahd protocol"},
	},
	{
		TopicID: "art-regimens",
		Response: `**ART Regimen Guidelines:**

**Preferred First-line:**
- **TDF + 3TC/FTC + DTG** (Dolutegravir-based)
- **TAF + 3TC/FTC + DTG** (if renal/bone concerns)

**Alternative Options:**
- AZT + 3TC + DTG
- ABC + 3TC + DTG

**When to Start:**
- All patients regardless of CD4 count
- Urgently if CD4 <200 or symptomatic`,
		Keywords: []string{"art", "treatment", "regimen", "medication", "arv", "antiretroviral", "first-line"},
	},
	{
		TopicID: "tb-screening",
		Response: `**TB/HIV Co-infection Screening:**

**Screening at Every Visit:**
- **Symptoms**: Cough >2 weeks, fever, night sweats, weight loss
- **Diagnosis**: GeneXpert (preferred over smear)
- **Prevention**: TPT for all without active TB
- **Treatment**: Start ART within 2 weeks of TB treatment

**TPT Options:**
- 6H (isoniazid x 6 months)
- 3HP (isoniazid + rifapentine x 3 months)
- 1HP (isoniazid + rifapentine x 1 month)`,
		Keywords: []string{"tb", "tuberculosis", "tpt", "isoniazid", "screening"},
	},
	{
		TopicID: "oi-prevention",
		Response: `**Opportunistic Infection Prevention:**

**Cotrimoxazole Prevention:**
- **Indication**: CD4 <200 or WHO stage 3/4
- **Duration**: Until CD4 >200 for 6 months on ART

**Fluconazole Prevention:**
- **Indication**: CD4 <100 in cryptococcal meningitis endemic areas
- **Duration**: Until CD4 >200 for 6 months

**Other Key Measures:**
- TB preventive therapy
- Vaccinations (PCV, HPV, influenza)
- Safe water and food practices`,
		Keywords: []string{"oi", "opportunistic", "infection", "prevention", "cotrimoxazole", "fluconazole"},
	},
}
