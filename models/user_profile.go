package models

// TravelPlan represents a single planned trip on a user's profile
type TravelPlan struct {
	Destination string   `dynamodbav:"destination" json:"destination"`                 // Safari destination name
	StartDate   string   `dynamodbav:"startDate" json:"startDate"`                     // RFC3339 date
	EndDate     string   `dynamodbav:"endDate" json:"endDate"`                         // RFC3339 date
	Activities  []string `dynamodbav:"activities,omitempty" json:"activities,omitempty"` // Planned activities
	Budget      int      `dynamodbav:"budget,omitempty" json:"budget,omitempty"`       // Budget in USD
}

// AgeRange represents the preferred companion age range
type AgeRange struct {
	Min int `dynamodbav:"min" json:"min"`
	Max int `dynamodbav:"max" json:"max"`
}

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID                  string       `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	Name                    string       `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Email                   string       `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Age                     int          `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Gender                  string       `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	TravelStyle             string       `dynamodbav:"travelStyle,omitempty" json:"travelStyle,omitempty"`         // budget, luxury, adventure, relaxation, cultural, mixed
	Interests               []string     `dynamodbav:"interests,omitempty" json:"interests,omitempty"`             // User's interests
	Languages               []string     `dynamodbav:"languages,omitempty" json:"languages,omitempty"`             // Spoken languages
	TravelPlans             []TravelPlan `dynamodbav:"travelPlans,omitempty" json:"travelPlans,omitempty"`         // Planned trips
	LookingForCompanion     bool         `dynamodbav:"lookingForCompanion" json:"lookingForCompanion"`             // Opted in to matchmaking
	RelationshipStatus      string       `dynamodbav:"relationshipStatus,omitempty" json:"relationshipStatus,omitempty"` // single, married, complicated, prefer-not-to-say
	ProfileImage            string       `dynamodbav:"profileImage,omitempty" json:"profileImage,omitempty"`       // S3 key or URL
	AccommodationPreference string       `dynamodbav:"accommodationPreference,omitempty" json:"accommodationPreference,omitempty"` // hostel, hotel, camping, airbnb, any
	PreferredAgeRange       *AgeRange    `dynamodbav:"preferredAgeRange,omitempty" json:"preferredAgeRange,omitempty"`
	CreatedAt               string       `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"` // Timestamp of signup
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
