package model

// CD4 风险分类选项
const (
	CD4RiskSevere   = "Severe"
	CD4RiskModerate = "Moderate"
	CD4RiskNormal   = "Normal"
	CD4RiskUnknown  = "Unknown"
)

// PatientObservation 单次临床快照（每次提交即时构建，不持久化）。
// binding 标签与前端输入控件的范围钳制保持一致；
// 直接调用 features.Build 时越界值按原样传递（见 features 包说明）。
type PatientObservation struct {
	Age       int     `json:"age" binding:"gte=0,lte=120"`
	Weight    float64 `json:"weight" binding:"gte=20,lte=200"`
	Height    float64 `json:"height" binding:"gte=100,lte=220"`
	CD4       float64 `json:"cd4" binding:"gte=0,lte=2000"`
	ViralLoad float64 `json:"viralLoad" binding:"gte=0,lte=10000000"`
	MonthsRx  int     `json:"monthsRx" binding:"gte=0,lte=6"`
	WHOStage  int     `json:"whoStage" binding:"required,oneof=1 2 3 4"`
	CD4Risk   string  `json:"cd4Risk" binding:"required,oneof=Severe Moderate Normal Unknown"`
	Sex       string  `json:"sex" binding:"required"`
}

// PredictResponse 风险预测响应
type PredictResponse struct {
	Label           bool               `json:"label"`
	Probability     float64            `json:"probability"`
	Tier            string             `json:"tier"`
	Banner          string             `json:"banner"`
	Findings        []string           `json:"findings"`
	Recommendations []string           `json:"recommendations"`
	Features        map[string]float64 `json:"features"`
}
