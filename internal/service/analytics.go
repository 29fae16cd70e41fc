package service

// Static informational payloads served behind authentication. The numbers
// are fixed mock data; nothing computes them.

type CrowdDensity struct {
	Current int `json:"current"`
	Average int `json:"average"`
	Peak    int `json:"peak"`
}

type TrafficFlow struct {
	Entrances int `json:"entrances"`
	Exits     int `json:"exits"`
	NetFlow   int `json:"net_flow"`
}

type CameraSummary struct {
	ActiveCameras int `json:"active_cameras"`
	TotalCameras  int `json:"total_cameras"`
	Alerts        int `json:"alerts"`
}

type DashboardAnalytics struct {
	CrowdDensity   CrowdDensity  `json:"crowd_density"`
	TrafficFlow    TrafficFlow   `json:"traffic_flow"`
	VideoAnalytics CameraSummary `json:"video_analytics"`
	Insights       []string      `json:"insights"`
}

type Camera struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	CrowdCount int    `json:"crowd_count"`
}

type CameraAlert struct {
	ID       int    `json:"id"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type VideoAnalytics struct {
	Cameras []Camera      `json:"cameras"`
	Alerts  []CameraAlert `json:"alerts"`
}

type AnalyticsService struct{}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

var _ Analytics = (*AnalyticsService)(nil)

func (s *AnalyticsService) Dashboard() DashboardAnalytics {
	return DashboardAnalytics{
		CrowdDensity: CrowdDensity{Current: 75, Average: 68, Peak: 95},
		TrafficFlow:  TrafficFlow{Entrances: 234, Exits: 189, NetFlow: 45},
		VideoAnalytics: CameraSummary{
			ActiveCameras: 8,
			TotalCameras:  10,
			Alerts:        2,
		},
		Insights: []string{
			"Peak crowd density detected at 2:30 PM",
			"Entrance 3 showing highest traffic",
			"Recommended capacity: 85% reached",
		},
	}
}

func (s *AnalyticsService) VideoFeeds() VideoAnalytics {
	return VideoAnalytics{
		Cameras: []Camera{
			{ID: 1, Name: "Entrance 1", Status: "active", CrowdCount: 23},
			{ID: 2, Name: "Entrance 2", Status: "active", CrowdCount: 18},
			{ID: 3, Name: "Main Hall", Status: "active", CrowdCount: 145},
			{ID: 4, Name: "Exit 1", Status: "inactive", CrowdCount: 0},
		},
		Alerts: []CameraAlert{
			{ID: 1, Message: "High crowd density in Main Hall", Severity: "warning"},
			{ID: 2, Message: "Camera 4 offline", Severity: "error"},
		},
	}
}
