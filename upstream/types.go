package upstream

// Patient 是上游叙述服务接收的患者信息。
type Patient struct {
	ID             string   `json:"id,omitempty"`
	FirstName      string   `json:"firstName,omitempty"`
	LastName       string   `json:"lastName,omitempty"`
	DateOfBirth    string   `json:"dateOfBirth,omitempty"`
	Gender         string   `json:"gender,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Email          string   `json:"email,omitempty"`
	Address        string   `json:"address,omitempty"`
	MedicalHistory []string `json:"medicalHistory,omitempty"`
	Allergies      []string `json:"allergies,omitempty"`
	Medications    []string `json:"medications,omitempty"`
}

// Visit 是一次就诊记录，Date 使用 YYYY-MM-DD。
type Visit struct {
	ID             string `json:"id,omitempty"`
	Date           string `json:"date,omitempty"`
	VisitType      string `json:"visitType,omitempty"`
	ChiefComplaint string `json:"chiefComplaint,omitempty"`
	Diagnosis      string `json:"diagnosis,omitempty"`
	Treatment      string `json:"treatment,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Provider       string `json:"provider,omitempty"`
}

type narrativeRequest struct {
	Patient Patient `json:"patient"`
	Visits  []Visit `json:"visits"`
}

type narrativeResponse struct {
	Success   bool   `json:"success"`
	Narrative string `json:"narrative"`
	Error     string `json:"error,omitempty"`
}
