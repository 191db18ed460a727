package entity

import "time"

// JobOpening is a listing posted by a guide for learners to browse.
type JobOpening struct {
	ID                  string    `json:"id" firestore:"id"`
	CompanyName         string    `json:"company_name" firestore:"companyName"`
	JobRole             string    `json:"job_role" firestore:"jobRole"`
	JobType             string    `json:"job_type" firestore:"jobType"`
	Content             string    `json:"content" firestore:"content"`
	Location            string    `json:"location" firestore:"location"`
	Salary              string    `json:"salary,omitempty" firestore:"salary,omitempty"`
	YearsOfExperience   string    `json:"years_of_experience,omitempty" firestore:"yearsOfExperience,omitempty"`
	Link                string    `json:"link,omitempty" firestore:"link,omitempty"`
	Source              string    `json:"source,omitempty" firestore:"source,omitempty"`
	// Display text, not a parsed date: listings say things like
	// "Rolling basis" or "End of March".
	ApplicationDeadline string `json:"application_deadline,omitempty" firestore:"applicationDeadline,omitempty"`
	PostedBy            string    `json:"posted_by" firestore:"postedBy"`
	CreatedAt           time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt           time.Time `json:"updated_at" firestore:"updatedAt"`
}
