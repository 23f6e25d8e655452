package model

// PatientRecord 队列分析中的一行病人记录（来自上传 CSV 或合成数据）
type PatientRecord struct {
	PatientID    string  `json:"patientId"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	CD4Count     float64 `json:"cd4Count"`
	ViralLoad    float64 `json:"viralLoad"`
	WHOStage     int     `json:"whoStage"`
	MonthsOnART  int     `json:"monthsOnArt"`
	ARTRegimen   string  `json:"artRegimen"`
	MissedVisits int     `json:"missedVisits"`

	// 可选列缺失时对应图表面板降级
	HasWHOStage     bool `json:"-"`
	HasMonthsOnART  bool `json:"-"`
	HasARTRegimen   bool `json:"-"`
	HasMissedVisits bool `json:"-"`
}

// HistogramBin 直方图分箱
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ScatterPoint 病毒载量-CD4 散点
type ScatterPoint struct {
	CD4       float64 `json:"cd4"`
	ViralLoad float64 `json:"viralLoad"`
	Risk      string  `json:"risk"`
}

// AnalyticsOverview 队列分析汇总（图表数据载荷）
type AnalyticsOverview struct {
	Total            int            `json:"total"`
	SkippedRows      int            `json:"skippedRows"`
	SuppressionRate  float64        `json:"suppressionRate"`
	AHDPrevalence    float64        `json:"ahdPrevalence"`
	CD4Categories    map[string]int `json:"cd4Categories"`
	RetentionBuckets map[string]int `json:"retentionBuckets,omitempty"`
	RegimenCounts    map[string]int `json:"regimenCounts,omitempty"`
	CD4Histogram     []HistogramBin `json:"cd4Histogram"`
	Scatter          []ScatterPoint `json:"scatter"`
	DisabledPanels   []string       `json:"disabledPanels,omitempty"`
}
