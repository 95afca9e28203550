package types

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// AnalyzeRequest is the input of a new analysis.
type AnalyzeRequest struct {
	Company string `json:"company" validate:"max=200"`
	Role    string `json:"role" validate:"max=200"`
	JDText  string `json:"jd_text" validate:"max=100000"`
	// JDURL is fetched when JDText is blank.
	JDURL string `json:"jd_url" validate:"omitempty,url,max=2048"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// ConfidenceUpdateRequest carries confidence changes for an entry.
type ConfidenceUpdateRequest struct {
	SkillConfidenceMap map[string]string `json:"skill_confidence_map" validate:"required,min=1,dive,keys,required,endkeys,oneof=know practice"`
}

// Validate validates the ConfidenceUpdateRequest using the validator.
func (r *ConfidenceUpdateRequest) Validate() error {
	return validate.Struct(r)
}
