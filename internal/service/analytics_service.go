package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
)

// CSV 必需列
var requiredColumns = []string{"Patient_ID", "Age", "Gender", "CD4_Count", "Viral_Load"}

// CSV 可选列（缺失时仅对应图表面板降级）
var optionalColumns = []string{"WHO_Stage", "Months_on_ART", "ART_Regimen", "Missed_Visits"}

// 散点图最多返回的点数
const maxScatterPoints = 500

var artRegimens = []string{"TDF+3TC+DTG", "TAF+FTC+DTG", "AZT+3TC+DTG", "ABC+3TC+DTG"}

// AnalyticsService 队列分析服务。
// 纯数据汇总，与预测和问答互不依赖。
type AnalyticsService struct {
	logger *zap.Logger
}

// NewAnalyticsService 创建分析服务
func NewAnalyticsService(logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{logger: logger}
}

// SyntheticCohort 生成演示用合成队列（CD4 50-600，病毒载量 20-50000）
func (s *AnalyticsService) SyntheticCohort(n int) []model.PatientRecord {
	records := make([]model.PatientRecord, n)
	for i := range records {
		gender := "F"
		if rand.Intn(2) == 1 {
			gender = "M"
		}
		records[i] = model.PatientRecord{
			PatientID:    fmt.Sprintf("SYN-%04d", i+1),
			Age:          18 + rand.Intn(53),
			Gender:       gender,
			CD4Count:     float64(50 + rand.Intn(551)),
			ViralLoad:    float64(20 + rand.Intn(49981)),
			WHOStage:     1 + rand.Intn(4),
			MonthsOnART:  rand.Intn(37),
			ARTRegimen:   artRegimens[rand.Intn(len(artRegimens))],
			MissedVisits: rand.Intn(6),

			HasWHOStage:     true,
			HasMonthsOnART:  true,
			HasARTRegimen:   true,
			HasMissedVisits: true,
		}
	}
	return records
}

// ParseCSV 解析并校验上传的病人队列。
// 必需列缺失返回错误；可选列缺失只降级对应面板；坏行跳过并计数。
func (s *AnalyticsService) ParseCSV(r io.Reader) ([]model.PatientRecord, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("读取 CSV 表头失败: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, 0, fmt.Errorf("CSV 缺少必需列: %s", col)
		}
	}

	var records []model.PatientRecord
	skipped := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		rec, ok := parseRow(row, idx)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	s.logger.Info("CSV 解析完成",
		zap.Int("rows", len(records)),
		zap.Int("skipped", skipped))

	return records, skipped, nil
}

// parseRow 解析单行；必需字段非法时整行作废
func parseRow(row []string, idx map[string]int) (model.PatientRecord, bool) {
	field := func(name string) (string, bool) {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var rec model.PatientRecord

	id, _ := field("Patient_ID")
	if id == "" {
		return rec, false
	}
	rec.PatientID = id

	ageStr, _ := field("Age")
	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return rec, false
	}
	rec.Age = age

	rec.Gender, _ = field("Gender")

	cd4Str, _ := field("CD4_Count")
	cd4, err := strconv.ParseFloat(cd4Str, 64)
	if err != nil {
		return rec, false
	}
	rec.CD4Count = cd4

	vlStr, _ := field("Viral_Load")
	vl, err := strconv.ParseFloat(vlStr, 64)
	if err != nil {
		return rec, false
	}
	rec.ViralLoad = vl

	// 可选列：解析失败按缺失处理
	if v, ok := field("WHO_Stage"); ok && v != "" {
		if stage, err := strconv.Atoi(v); err == nil && stage >= 1 && stage <= 4 {
			rec.WHOStage = stage
			rec.HasWHOStage = true
		}
	}
	if v, ok := field("Months_on_ART"); ok && v != "" {
		if months, err := strconv.Atoi(v); err == nil && months >= 0 {
			rec.MonthsOnART = months
			rec.HasMonthsOnART = true
		}
	}
	if v, ok := field("ART_Regimen"); ok && v != "" {
		rec.ARTRegimen = v
		rec.HasARTRegimen = true
	}
	if v, ok := field("Missed_Visits"); ok && v != "" {
		if missed, err := strconv.Atoi(v); err == nil && missed >= 0 {
			rec.MissedVisits = missed
			rec.HasMissedVisits = true
		}
	}

	return rec, true
}

// Overview 计算队列汇总指标与图表数据
func (s *AnalyticsService) Overview(records []model.PatientRecord, skipped int) model.AnalyticsOverview {
	overview := model.AnalyticsOverview{
		Total:         len(records),
		SkippedRows:   skipped,
		CD4Categories: map[string]int{"Severe": 0, "Moderate": 0, "Normal": 0},
		CD4Histogram:  makeCD4Bins(),
	}
	if len(records) == 0 {
		return overview
	}

	suppressed := 0
	ahd := 0
	hasRetention := false
	hasRegimen := false
	retention := map[string]int{"0": 0, "1-2": 0, "3+": 0}
	regimens := map[string]int{}

	for _, rec := range records {
		if rec.ViralLoad < 1000 {
			suppressed++
		}

		// AHD = CD4<200 或 WHO 3/4 期
		if rec.CD4Count < 200 || (rec.HasWHOStage && rec.WHOStage >= 3) {
			ahd++
		}

		switch {
		case rec.CD4Count < 200:
			overview.CD4Categories["Severe"]++
		case rec.CD4Count <= 350:
			overview.CD4Categories["Moderate"]++
		default:
			overview.CD4Categories["Normal"]++
		}

		binCD4(overview.CD4Histogram, rec.CD4Count)

		if rec.HasMissedVisits {
			hasRetention = true
			switch {
			case rec.MissedVisits == 0:
				retention["0"]++
			case rec.MissedVisits <= 2:
				retention["1-2"]++
			default:
				retention["3+"]++
			}
		}

		if rec.HasARTRegimen {
			hasRegimen = true
			regimens[rec.ARTRegimen]++
		}

		if len(overview.Scatter) < maxScatterPoints {
			overview.Scatter = append(overview.Scatter, model.ScatterPoint{
				CD4:       rec.CD4Count,
				ViralLoad: rec.ViralLoad,
				Risk:      riskLabel(rec),
			})
		}
	}

	overview.SuppressionRate = float64(suppressed) / float64(len(records))
	overview.AHDPrevalence = float64(ahd) / float64(len(records))

	if hasRetention {
		overview.RetentionBuckets = retention
	} else {
		overview.DisabledPanels = append(overview.DisabledPanels, "retention")
	}
	if hasRegimen {
		overview.RegimenCounts = regimens
	} else {
		overview.DisabledPanels = append(overview.DisabledPanels, "regimens")
	}

	return overview
}

// riskLabel 散点着色用的粗分层
func riskLabel(rec model.PatientRecord) string {
	switch {
	case rec.CD4Count < 200 || (rec.HasWHOStage && rec.WHOStage == 4):
		return "High"
	case rec.CD4Count <= 350 || rec.ViralLoad >= 1000:
		return "Moderate"
	default:
		return "Low"
	}
}

// makeCD4Bins 固定分箱：0-800 每 100 一箱，末箱吸收溢出
func makeCD4Bins() []model.HistogramBin {
	bins := make([]model.HistogramBin, 8)
	for i := range bins {
		bins[i] = model.HistogramBin{Low: float64(i * 100), High: float64((i + 1) * 100)}
	}
	return bins
}

func binCD4(bins []model.HistogramBin, cd4 float64) {
	i := int(cd4 / 100)
	if i < 0 {
		i = 0
	}
	if i >= len(bins) {
		i = len(bins) - 1
	}
	bins[i].Count++
}
