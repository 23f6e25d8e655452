package features

import (
	"math"
	"testing"

	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
)

func baseObservation() model.PatientObservation {
	return model.PatientObservation{
		Age:       35,
		Weight:    60,
		Height:    165,
		CD4:       350,
		ViralLoad: 1000,
		MonthsRx:  3,
		WHOStage:  1,
		CD4Risk:   model.CD4RiskNormal,
		Sex:       "Female",
	}
}

func TestBuild_BMI(t *testing.T) {
	obs := baseObservation()
	vec := Build(obs)

	want := 60.0 / (1.65 * 1.65)
	if math.Abs(vec[ColBMI]-want) > 1e-9 {
		t.Fatalf("BMI = %v, want %v", vec[ColBMI], want)
	}
}

func TestBuild_BMIZeroHeight(t *testing.T) {
	obs := baseObservation()
	obs.Height = 0
	vec := Build(obs)

	if vec[ColBMI] != 0 {
		t.Fatalf("expected BMI 0 for zero height, got %v", vec[ColBMI])
	}
}

func TestBuild_CD4RiskOneHot(t *testing.T) {
	cases := []struct {
		risk                     string
		severe, moderate, normal float64
	}{
		{model.CD4RiskSevere, 1, 0, 0},
		{model.CD4RiskModerate, 0, 1, 0},
		{model.CD4RiskNormal, 0, 0, 1},
		{model.CD4RiskUnknown, 0, 0, 0},
	}

	for _, c := range cases {
		obs := baseObservation()
		obs.CD4Risk = c.risk
		vec := Build(obs)

		if vec[ColCD4RiskSevere] != c.severe || vec[ColCD4RiskMod] != c.moderate || vec[ColCD4RiskNormal] != c.normal {
			t.Fatalf("risk %s: got severe=%v moderate=%v normal=%v", c.risk,
				vec[ColCD4RiskSevere], vec[ColCD4RiskMod], vec[ColCD4RiskNormal])
		}
	}
}

func TestBuild_WHOStageOneHot(t *testing.T) {
	for stage := 1; stage <= 4; stage++ {
		obs := baseObservation()
		obs.WHOStage = stage
		vec := Build(obs)

		sum := vec[ColWHOStage2] + vec[ColWHOStage3] + vec[ColWHOStage4]
		if stage == 1 && sum != 0 {
			t.Fatalf("stage 1 should encode all-zero, got sum %v", sum)
		}
		if stage > 1 && sum != 1 {
			t.Fatalf("stage %d should set exactly one column, got sum %v", stage, sum)
		}
	}
}

func TestBuild_VLSuppression(t *testing.T) {
	cases := []struct {
		vl         float64
		suppressed float64
		missing    float64
	}{
		{0, 1, 1},
		{999, 1, 0},
		{1000, 0, 0},
		{5000, 0, 0},
	}

	for _, c := range cases {
		obs := baseObservation()
		obs.ViralLoad = c.vl
		vec := Build(obs)

		if vec[ColVLSuppressed] != c.suppressed {
			t.Fatalf("vl=%v: VL_Suppressed = %v, want %v", c.vl, vec[ColVLSuppressed], c.suppressed)
		}
		if vec[ColVLMissing] != c.missing {
			t.Fatalf("vl=%v: VL_Missing = %v, want %v", c.vl, vec[ColVLMissing], c.missing)
		}
	}
}

func TestBuild_SexPrefix(t *testing.T) {
	cases := map[string]float64{
		"Male":   1,
		"male":   1,
		"M":      1,
		"Female": 0,
		"f":      0,
	}
	for sex, want := range cases {
		obs := baseObservation()
		obs.Sex = sex
		if got := Build(obs)[ColSexM]; got != want {
			t.Fatalf("sex %q: Sex_M = %v, want %v", sex, got, want)
		}
	}
}

func TestBuild_PlaceholderColumnsAlwaysZero(t *testing.T) {
	vec := Build(baseObservation())
	for _, col := range []string{ColPMTCTMissing, ColCacxMissing, ColRefillMissing} {
		if vec[col] != 0 {
			t.Fatalf("%s = %v, want 0", col, vec[col])
		}
	}
}

func TestBuild_ExampleScenario(t *testing.T) {
	obs := baseObservation()
	obs.CD4 = 150
	obs.ViralLoad = 5000
	obs.WHOStage = 4
	vec := Build(obs)

	if vec[ColVLSuppressed] != 0 {
		t.Fatalf("VL_Suppressed = %v, want 0", vec[ColVLSuppressed])
	}
	if vec[ColCD4Missing] != 0 {
		t.Fatalf("CD4_Missing = %v, want 0", vec[ColCD4Missing])
	}
	if vec[ColWHOStage4] != 1 {
		t.Fatalf("Last_WHO_Stage_4 = %v, want 1", vec[ColWHOStage4])
	}
}

func TestAlign_ReordersToSchema(t *testing.T) {
	vec := Build(baseObservation())

	schema := DefaultSchema()
	vals, err := vec.Align(schema)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(vals) != len(schema) {
		t.Fatalf("got %d values, want %d", len(vals), len(schema))
	}
	for i, name := range schema {
		if vals[i] != vec[name] {
			t.Fatalf("column %s misaligned: %v != %v", name, vals[i], vec[name])
		}
	}
}

func TestAlign_MissingColumn(t *testing.T) {
	vec := Build(baseObservation())
	if _, err := vec.Align([]string{"No_Such_Column"}); err == nil {
		t.Fatal("expected error for unknown schema column")
	}
}

func TestAlign_ExtraColumn(t *testing.T) {
	vec := Build(baseObservation())
	schema := DefaultSchema()[:len(DefaultSchema())-1]
	if _, err := vec.Align(schema); err == nil {
		t.Fatal("expected error when vector has columns the schema lacks")
	}
}
