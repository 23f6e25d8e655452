package predictor

// RiskTier 风险分层
type RiskTier string

const (
	TierHigh     RiskTier = "High"
	TierModerate RiskTier = "Moderate"
	TierLow      RiskTier = "Low"
)

// TierOf 按概率分层。阈值为严格大于：0.75 与 0.45 的边界值落入下一层。
func TierOf(p float64) RiskTier {
	switch {
	case p > 0.75:
		return TierHigh
	case p > 0.45:
		return TierModerate
	default:
		return TierLow
	}
}

// Banner 分层对应的提示横幅
func (t RiskTier) Banner() string {
	switch t {
	case TierHigh:
		return "High Risk – Consider immediate clinical review."
	case TierModerate:
		return "Moderate Risk – Monitor closely."
	default:
		return "Low Risk – Continue routine care."
	}
}
