// ABOUTME: Wire types for AcademyX API resources
// ABOUTME: Users, companies, surveys, custom surveys, results and reports

package academyx

import (
	"encoding/json"
	"time"

	"github.com/2389/academyx-admin/internal/session"
)

// Platform roles carried on User.Role and in access token claims.
const (
	RoleSystemAdmin  = "SYSTEM_ADMIN"
	RoleCompanyAdmin = "COMPANY_ADMIN"
	RoleUser         = "USER"
)

// DefaultCompanyRole is assigned to personnel added without one.
const DefaultCompanyRole = "employee"

// Report generation states reported on SurveyResult.ReportStatus.
const (
	ReportWaiting    = "waiting"
	ReportProcessing = "processing"
	ReportCompleted  = "completed"
)

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Role        string    `json:"role"`
	CompanyRole string    `json:"companyRole,omitempty"`
	CompanyID   string    `json:"companyId,omitempty"`
	Company     *Company  `json:"company,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// LoginResult is the sign-in response.
type LoginResult struct {
	User   User           `json:"user"`
	Tokens session.Tokens `json:"tokens"`
}

// SignUpInput registers a new account.
type SignUpInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Company struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Sector    string     `json:"sector"`
	Size      string     `json:"size"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// CompanyInput creates or updates a company.
type CompanyInput struct {
	Name     string `json:"name"`
	Sector   string `json:"sector,omitempty"`
	Size     string `json:"size,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"isActive"`
}

type Question struct {
	ID      string   `json:"id,omitempty"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type Survey struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SurveyInput creates or updates a survey template.
type SurveyInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions,omitempty"`
}

// AddQuestionsInput appends questions to an existing survey.
type AddQuestionsInput struct {
	SurveyID  string     `json:"surveyId"`
	Questions []Question `json:"questions"`
}

type CustomSurveyQuestion struct {
	ID             string   `json:"id"`
	CustomSurveyID string   `json:"customSurveyId"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
}

// CustomSurvey is a survey assigned to one company with a due date.
type CustomSurvey struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	CompanyID   string                 `json:"companyId"`
	DueDate     string                 `json:"dueDate"`
	Company     *Company               `json:"company,omitempty"`
	Questions   []CustomSurveyQuestion `json:"questions,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// AssignmentInput generates a custom survey from a template for a company.
// SurveyID is left out of update bodies when empty.
type AssignmentInput struct {
	Title     string `json:"title"`
	SurveyID  string `json:"surveyId,omitempty"`
	CompanyID string `json:"companyId"`
	DueDate   string `json:"dueDate"`
}

// PersonnelInput adds or updates a company user.
type PersonnelInput struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Password    string `json:"password,omitempty"`
	CompanyRole string `json:"companyRole,omitempty"`
}

type ResponseOption struct {
	Option        string `json:"option"`
	ResponseCount int    `json:"responseCount"`
}

type QuestionResult struct {
	QuestionID string           `json:"questionId"`
	Question   string           `json:"question"`
	Responses  []ResponseOption `json:"responses"`
}

// SurveyResult aggregates answers for one custom survey.
type SurveyResult struct {
	Responses    []QuestionResult `json:"responses"`
	ReportStatus string           `json:"reportStatus"`
}

// Report is the generated analysis for a custom survey.
type Report struct {
	Report struct {
		Content      string    `json:"content"`
		GeneratedAt  time.Time `json:"generatedAt"`
		Participants int       `json:"participants"`
	} `json:"report"`
	Company *Company `json:"company,omitempty"`
	Survey  *Survey  `json:"survey,omitempty"`
}

// Result is an untyped acknowledgement body for mutations whose response
// shape the API does not pin down.
type Result = json.RawMessage
