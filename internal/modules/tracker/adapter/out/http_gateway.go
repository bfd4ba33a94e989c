package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"careercompass/internal/modules/tracker/domain"
	trackerout "careercompass/internal/modules/tracker/port/out"
	"careercompass/internal/platform/httpapi"
)

type studentResponse struct {
	ID           httpapi.FlexID `json:"id"`
	Name         string         `json:"name"`
	TargetCareer string         `json:"target_career"`
}

type activityResponse struct {
	ID        httpapi.FlexID `json:"id"`
	StudentID httpapi.FlexID `json:"student_id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Type      string         `json:"type"`
	Timestamp backendTime    `json:"timestamp"`
}

func (r activityResponse) activity() domain.Activity {
	return domain.Activity{
		ID:        string(r.ID),
		StudentID: string(r.StudentID),
		Name:      r.Name,
		Category:  domain.Category(r.Category),
		Type:      r.Type,
		Timestamp: time.Time(r.Timestamp),
	}
}

type createActivityRequest struct {
	StudentID httpapi.FlexID `json:"student_id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Type      string         `json:"type"`
}

type driftActivity struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type driftRequest struct {
	TargetCareer     string          `json:"target_career"`
	RecentActivities []driftActivity `json:"recent_activities"`
}

type driftResponse struct {
	OnTrackScore  *float64 `json:"on_track_score"`
	DriftScore    float64  `json:"drift_score"`
	IsDrifting    bool     `json:"is_drifting"`
	RelevantRatio float64  `json:"relevant_ratio"`
	Status        string   `json:"status"`
	Message       string   `json:"message"`
	Suggestions   []string `json:"suggestions"`
	Error         string   `json:"error"`
}

// backendTime accepts RFC 3339 and the zone-less ISO form the backend
// emits for UTC timestamps. Unparseable values decode to the zero time.
type backendTime time.Time

func (t *backendTime) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = backendTime(parsed.UTC())
			return nil
		}
	}
	return nil
}

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) trackerout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) GetStudent(ctx context.Context, studentID string) (domain.Profile, error) {
	var resp studentResponse
	if err := g.client.Get(ctx, "/students/"+url.PathEscape(studentID), &resp); err != nil {
		return domain.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	return domain.Profile{StudentID: string(resp.ID), Name: resp.Name, TargetCareer: resp.TargetCareer}, nil
}

func (g *HTTPGateway) ListActivities(ctx context.Context, studentID string) ([]domain.Activity, error) {
	var resp []activityResponse
	if err := g.client.Get(ctx, "/students/"+url.PathEscape(studentID)+"/activities/", &resp); err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	out := make([]domain.Activity, len(resp))
	for i, r := range resp {
		out[i] = r.activity()
	}
	return out, nil
}

func (g *HTTPGateway) CreateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	req := createActivityRequest{
		StudentID: httpapi.FlexID(activity.StudentID),
		Name:      activity.Name,
		Category:  string(activity.Category),
		Type:      activity.Type,
	}
	var resp activityResponse
	if err := g.client.Post(ctx, "/activities/", req, &resp); err != nil {
		return domain.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	return resp.activity(), nil
}

func (g *HTTPGateway) PredictDrift(ctx context.Context, targetCareer string, activities []domain.Activity) (domain.DriftResult, error) {
	req := driftRequest{TargetCareer: targetCareer, RecentActivities: make([]driftActivity, len(activities))}
	for i, a := range activities {
		req.RecentActivities[i] = driftActivity{Name: a.Name, Category: string(a.Category)}
	}
	var resp driftResponse
	if err := g.client.Post(ctx, "/predict_drift", req, &resp); err != nil {
		return domain.DriftResult{}, fmt.Errorf("predict drift: %w", err)
	}
	result := domain.DriftResult{
		DriftScore:    resp.DriftScore,
		IsDrifting:    resp.IsDrifting,
		RelevantRatio: resp.RelevantRatio,
		Status:        resp.Status,
		Message:       resp.Message,
		Suggestions:   resp.Suggestions,
		Error:         resp.Error,
	}
	if resp.OnTrackScore != nil {
		result.HasScore = true
		result.OnTrackScore = *resp.OnTrackScore
	}
	return result, nil
}
