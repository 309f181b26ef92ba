package models

type AnalyticsEvent string

const (
	AnalyticsPredictionCreated      AnalyticsEvent = "Created a Prediction"
	AnalyticsBatchPredictionCreated AnalyticsEvent = "Created a Batch Prediction"
	AnalyticsSensorReadingCreated   AnalyticsEvent = "Created a Sensor Reading"
	AnalyticsUserRegistered         AnalyticsEvent = "Registered an Account"
	AnalyticsUserLoggedIn           AnalyticsEvent = "Logged In"
)
