// Package features 将临床表单输入映射为分类器期望的特征向量。
//
// Build 是纯函数，不做范围校验：表单侧已有输入钳制，直接调用时
// 越界值按原样传递（身高 <= 0 时 BMI 记 0，而不是报错）。
// 这里保留了训练管线的宽松输入策略，校验只发生在 HTTP 绑定层。
package features

import (
	"fmt"
	"strings"

	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
)

// 特征列名（与训练时的 DataFrame 列名一致）
const (
	ColAge           = "Age at reporting"
	ColWeight        = "Weight"
	ColHeight        = "Height"
	ColBMI           = "BMI"
	ColCD4           = "Latest CD4 Result"
	ColCD4Missing    = "CD4_Missing"
	ColVL            = "Last VL Result"
	ColVLSuppressed  = "VL_Suppressed"
	ColVLMissing     = "VL_Missing"
	ColMonthsRx      = "Months of Prescription"
	ColCD4RiskMod    = "cd4_risk_Moderate"
	ColCD4RiskNormal = "cd4_risk_Normal"
	ColCD4RiskSevere = "cd4_risk_Severe"
	ColWHOStage2     = "Last_WHO_Stage_2"
	ColWHOStage3     = "Last_WHO_Stage_3"
	ColWHOStage4     = "Last_WHO_Stage_4"
	ColPMTCTMissing  = "Active_in_PMTCT_Missing"
	ColCacxMissing   = "Cacx_Screening_Missing"
	ColRefillMissing = "Refill_Date_Missing"
	ColSexM          = "Sex_M"
)

// FeatureVector 命名特征向量（列名 -> 数值）
type FeatureVector map[string]float64

// Build 从临床快照派生特征向量。
// 派生规则与训练管线一致：
//   - BMI = weight / (height_m)^2，身高 <= 0 时取 0；
//   - 缺失指示列：原始值 <= 0 记 1；
//   - VL_Suppressed：病毒载量 < 1000 记 1；
//   - CD4 风险分类与 WHO 分期 one-hot，Unknown / Stage 1 为全零；
//   - 三个占位指示列（PMTCT/Cacx/Refill）恒为 0，表单不采集但模型需要这些列。
func Build(obs model.PatientObservation) FeatureVector {
	bmi := 0.0
	if obs.Height > 0 {
		hm := obs.Height / 100
		bmi = obs.Weight / (hm * hm)
	}

	vec := FeatureVector{
		ColAge:           float64(obs.Age),
		ColWeight:        obs.Weight,
		ColHeight:        obs.Height,
		ColBMI:           bmi,
		ColCD4:           obs.CD4,
		ColCD4Missing:    boolToFloat(obs.CD4 <= 0),
		ColVL:            obs.ViralLoad,
		ColVLSuppressed:  boolToFloat(obs.ViralLoad < 1000),
		ColVLMissing:     boolToFloat(obs.ViralLoad <= 0),
		ColMonthsRx:      float64(obs.MonthsRx),
		ColCD4RiskMod:    boolToFloat(obs.CD4Risk == model.CD4RiskModerate),
		ColCD4RiskNormal: boolToFloat(obs.CD4Risk == model.CD4RiskNormal),
		ColCD4RiskSevere: boolToFloat(obs.CD4Risk == model.CD4RiskSevere),
		ColWHOStage2:     boolToFloat(obs.WHOStage == 2),
		ColWHOStage3:     boolToFloat(obs.WHOStage == 3),
		ColWHOStage4:     boolToFloat(obs.WHOStage == 4),
		ColPMTCTMissing:  0,
		ColCacxMissing:   0,
		ColRefillMissing: 0,
		ColSexM:          boolToFloat(strings.HasPrefix(strings.ToLower(obs.Sex), "m")),
	}

	return vec
}

// Align 按模型声明的列顺序重排特征向量。
// 构建器本身不知道模型 schema，重排在预测前显式进行；
// 列缺失或多余一律视为配置错误，立即失败而不是静默错位。
func (v FeatureVector) Align(schema []string) ([]float64, error) {
	vals := make([]float64, len(schema))
	for i, name := range schema {
		val, ok := v[name]
		if !ok {
			return nil, fmt.Errorf("特征向量缺少模型所需列: %s", name)
		}
		vals[i] = val
	}

	if len(v) != len(schema) {
		return nil, fmt.Errorf("特征向量列数与模型 schema 不一致: %d != %d", len(v), len(schema))
	}

	return vals, nil
}

// DefaultSchema 训练时的标准列顺序。
// 正式 schema 以模型包内的 feature_names 为准，此处仅供测试与示例清单使用。
func DefaultSchema() []string {
	return []string{
		ColAge, ColWeight, ColHeight, ColBMI,
		ColCD4, ColCD4Missing,
		ColVL, ColVLSuppressed, ColVLMissing,
		ColMonthsRx,
		ColCD4RiskMod, ColCD4RiskNormal, ColCD4RiskSevere,
		ColWHOStage2, ColWHOStage3, ColWHOStage4,
		ColPMTCTMissing, ColCacxMissing, ColRefillMissing,
		ColSexM,
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
