package domain

// FieldRecord is a field definition as extracted from org metadata.
// FullName is the metadata API alias of APIName.
type FieldRecord struct {
	APIName     string `json:"apiName,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Identifier returns APIName, falling back to FullName.
func (f FieldRecord) Identifier() string {
	if f.APIName != "" {
		return f.APIName
	}
	return f.FullName
}

// ValidationRuleRecord is a validation rule definition. Only the error
// condition formula is inspected for bypass patterns.
type ValidationRuleRecord struct {
	APIName               string `json:"apiName,omitempty"`
	FullName              string `json:"fullName,omitempty"`
	Active                bool   `json:"active"`
	Description           string `json:"description"`
	ErrorConditionFormula string `json:"errorConditionFormula,omitempty"`
	Formula               string `json:"formula,omitempty"`
	ErrorMessage          string `json:"errorMessage"`
	ErrorDisplayField     string `json:"errorDisplayField"`
}

func (r ValidationRuleRecord) Identifier() string {
	if r.APIName != "" {
		return r.APIName
	}
	return r.FullName
}

// Condition returns the error condition formula, falling back to the
// short "formula" alias.
func (r ValidationRuleRecord) Condition() string {
	if r.ErrorConditionFormula != "" {
		return r.ErrorConditionFormula
	}
	return r.Formula
}

// TriggerRecord is an Apex trigger with its source text.
type TriggerRecord struct {
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Content string `json:"content,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Source returns Content, falling back to Code.
func (t TriggerRecord) Source() string {
	if t.Content != "" {
		return t.Content
	}
	return t.Code
}

// FlowRecord is a flow reduced to the elements that can gate execution.
type FlowRecord struct {
	Name     string        `json:"name"`
	Active   bool          `json:"active"`
	Elements []FlowElement `json:"elements"`
}

// FlowElement is one element of a flow. Location is the element kind
// ("Start", "Decision", ...) and Condition its entry criteria text.
type FlowElement struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Condition string `json:"condition"`
}
