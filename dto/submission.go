// file: dto/submission.go
package dto

type SubmitFlagReq struct {
	Flag      string `json:"flag"`
	FlagCamel string `json:"Flag"`
}

func (r *SubmitFlagReq) Normalize() {
	if r.Flag == "" && r.FlagCamel != "" {
		r.Flag = r.FlagCamel
	}
}

// SubmitFlagResp 四种结果共用一个形状：
// solved 带 points_awarded，rate_limited 带 retry_after_seconds
type SubmitFlagResp struct {
	Status            string `json:"status"` // solved / incorrect / already_solved / rate_limited
	PointsAwarded     uint   `json:"points_awarded,omitempty"`
	RetryAfterSeconds int64  `json:"retry_after_seconds,omitempty"`
}
