package predictor

import (
	"github.com/ahdcopilot/ahd-copilot-go/internal/features"
)

// Narrative 阈值规则生成的临床解读。
// 这是确定性的模板展开，不是模型解释（非 SHAP / 特征重要性）。
type Narrative struct {
	Findings        []string
	Recommendations []string
}

// 紧急处置建议（label=1）
var urgentRecommendations = []string{
	"Urgent ART initiation (within 7 days, same day if possible)",
	"Comprehensive OI screening (TB, cryptococcus)",
	"Cotrimoxazole preventive therapy",
	"Enhanced adherence counseling",
	"Close follow-up in 2-4 weeks",
}

// 常规处置建议（label=0）
var routineRecommendations = []string{
	"Standard ART care",
	"Routine monitoring",
	"Prevention counseling",
}

// Interpret 按固定优先级扫描特征向量中的阈值越界，
// 命中的条目全部列出且保持扫描顺序（不按严重程度重排）：
// CD4 危急 / CD4 偏低 → 病毒载量未抑制 → WHO 4 期 → WHO 3 期 → BMI 过低 / 过高。
// 建议块只取决于二分类标签。
func Interpret(label bool, vec features.FeatureVector) Narrative {
	var findings []string

	cd4 := vec[features.ColCD4]
	if cd4 < 200 {
		findings = append(findings, "Critical CD4 count (<200 cells/mm3) - severe immunodeficiency")
	} else if cd4 <= 350 {
		findings = append(findings, "Low CD4 count (200-350 cells/mm3) - advanced immunodeficiency")
	}

	if vec[features.ColVLSuppressed] == 0 && vec[features.ColVL] > 0 {
		findings = append(findings, "Unsuppressed viral load (>=1000 copies/mL)")
	}

	if vec[features.ColWHOStage4] == 1 {
		findings = append(findings, "WHO Stage 4 disease - AHD criteria met")
	} else if vec[features.ColWHOStage3] == 1 {
		findings = append(findings, "WHO Stage 3 disease - AHD criteria met")
	}

	bmi := vec[features.ColBMI]
	if bmi > 0 && bmi < 18.5 {
		findings = append(findings, "Underweight (BMI <18.5) - consider nutritional support")
	} else if bmi > 30 {
		findings = append(findings, "Obese (BMI >30) - assess metabolic comorbidities")
	}

	recs := routineRecommendations
	if label {
		recs = urgentRecommendations
	}

	return Narrative{Findings: findings, Recommendations: recs}
}
