package model

// DistributionItem is one group of a grouped count.
type DistributionItem struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DashboardStats holds the summary cards of the dashboard.
type DashboardStats struct {
	TotalStudents int `json:"totalStudents"`
	Grade12Count  int `json:"grade12Count"`
	Grade13Count  int `json:"grade13Count"`
	MaleCount     int `json:"maleCount"`
	FemaleCount   int `json:"femaleCount"`
	// NewAdmissionsThisYear is approximated by the grade 12 count; students
	// carry no admission date.
	NewAdmissionsThisYear int `json:"newAdmissionsThisYear"`
}

// Demographics groups the three distributions shown on the dashboard.
type Demographics struct {
	StreamDistribution []DistributionItem `json:"streamDistribution"`
	GenderDistribution []DistributionItem `json:"genderDistribution"`
	GradeDistribution  []DistributionItem `json:"gradeDistribution"`
}

// AdmissionStats is the admission report.
type AdmissionStats struct {
	TotalAdmissions int `json:"totalAdmissions"`
}
