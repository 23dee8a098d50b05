package dto

import (
	"encoding/json"

	"argent_backend/internal/models"

	"gorm.io/datatypes"
)

// ToUserResponse строит публичное представление аккаунта (без хеша пароля)
func ToUserResponse(a *models.Account) UserResponse {
	return UserResponse{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		FullName:    a.FullName,
		Gender:      a.Gender,
		PhoneNumber: a.PhoneNumber,
		Birthday:    a.Birthday,
		About:       a.About,
		Address:     a.Address,
		Avatar:      a.Avatar,
		Banner:      a.Banner,
		CV:          a.CV,
		Skills:      jsonToStrings(a.Skills),
		Status:      a.Status,
		Verified:    a.Verified,
		CreatedAt:   a.CreatedAt,
	}
}

// ToJobResponse строит представление вакансии
func ToJobResponse(j *models.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		AccountID:   j.AccountID,
		Username:    j.Username,
		EmailUser:   j.EmailUser,
		Title:       j.Title,
		Description: j.Description,
		Type:        j.Type,
		Level:       j.Level,
		WorkPlace:   j.WorkPlace,
		Location:    j.Location,
		Salary:      j.Salary,
		Categories:  jsonToStrings(j.Categories),
		Closed:      j.Closed,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ToJobResponses - то же для списка
func ToJobResponses(jobs []models.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, ToJobResponse(&jobs[i]))
	}
	return out
}

// ToReportResponse строит представление жалобы
func ToReportResponse(r *models.Report) ReportResponse {
	return ReportResponse{
		ID:          r.ID,
		ReportedID:  r.ReportedID,
		ReporterID:  r.ReporterID,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// StringsToJSON сериализует срез строк в JSON-колонку
func StringsToJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}

func jsonToStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
