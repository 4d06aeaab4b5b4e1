// Package disease holds the catalog of supported diseases and the parsing
// of raw form inputs into feature vectors.
package disease

import "github.com/kiranshivaraju/healthassist/pkg/models"

const (
	SlugDiabetes     = "diabetes"
	SlugHeartDisease = "heart-disease"
	SlugParkinsons   = "parkinsons"
)

var diabetes = &models.Disease{
	Slug:           SlugDiabetes,
	Name:           "diabetes",
	MenuLabel:      "Diabetes Prediction",
	Title:          "Diabetes Prediction using ML",
	Table:          "diabetes_predictions",
	ModelFile:      "diabetes_model.json",
	Columns:        3,
	SubmitLabel:    "Diabetes Test Result",
	RecordsHeading: "Diabetes Predictions",
	Fields: []models.Field{
		{Column: "pregnancies", Label: "Number of Pregnancies"},
		{Column: "glucose", Label: "Glucose Level"},
		{Column: "blood_pressure", Label: "Blood Pressure value"},
		{Column: "skin_thickness", Label: "Skin Thickness value"},
		{Column: "insulin", Label: "Insulin Level"},
		{Column: "bmi", Label: "BMI value"},
		{Column: "diabetes_pedigree_function", Label: "Diabetes Pedigree Function value"},
		{Column: "age", Label: "Age of the Person"},
	},
	PositiveDiagnosis: "The person is diabetic",
	NegativeDiagnosis: "The person is not diabetic",
}

var heartDisease = &models.Disease{
	Slug:           SlugHeartDisease,
	Name:           "heart disease",
	MenuLabel:      "Heart Disease Prediction",
	Title:          "Heart Disease Prediction using ML",
	Table:          "heart_disease_predictions",
	ModelFile:      "heart_disease_model.json",
	Columns:        3,
	SubmitLabel:    "Heart Disease Test Result",
	RecordsHeading: "Heart Disease Predictions",
	Fields: []models.Field{
		{Column: "age", Label: "Age"},
		{Column: "sex", Label: "Sex"},
		{Column: "cp", Label: "Chest Pain types"},
		{Column: "trestbps", Label: "Resting Blood Pressure"},
		{Column: "chol", Label: "Serum Cholestoral in mg/dl"},
		{Column: "fbs", Label: "Fasting Blood Sugar > 120 mg/dl"},
		{Column: "restecg", Label: "Resting Electrocardiographic results"},
		{Column: "thalach", Label: "Maximum Heart Rate achieved"},
		{Column: "exang", Label: "Exercise Induced Angina"},
		{Column: "oldpeak", Label: "ST depression induced by exercise"},
		{Column: "slope", Label: "Slope of the peak exercise ST segment"},
		{Column: "ca", Label: "Major vessels colored by flourosopy"},
		{Column: "thal", Label: "thal: 0 = normal; 1 = fixed defect; 2 = reversable defect"},
	},
	PositiveDiagnosis: "The person is having heart disease",
	NegativeDiagnosis: "The person does not have any heart disease",
}

var parkinsons = &models.Disease{
	Slug:           SlugParkinsons,
	Name:           "Parkinson's disease",
	MenuLabel:      "Parkinsons Prediction",
	Title:          "Parkinson's Disease Prediction using ML",
	Table:          "parkinsons_predictions",
	ModelFile:      "parkinsons_model.json",
	Columns:        5,
	SubmitLabel:    "Parkinson's Test Result",
	RecordsHeading: "Parkinson's Disease Predictions",
	Fields: []models.Field{
		{Column: "fo", Label: "MDVP:Fo(Hz)"},
		{Column: "fhi", Label: "MDVP:Fhi(Hz)"},
		{Column: "flo", Label: "MDVP:Flo(Hz)"},
		{Column: "jitter_percent", Label: "MDVP:Jitter(%)"},
		{Column: "jitter_abs", Label: "MDVP:Jitter(Abs)"},
		{Column: "rap", Label: "MDVP:RAP"},
		{Column: "ppq", Label: "MDVP:PPQ"},
		{Column: "ddp", Label: "Jitter:DDP"},
		{Column: "shimmer", Label: "MDVP:Shimmer"},
		{Column: "shimmer_db", Label: "MDVP:Shimmer(dB)"},
		{Column: "apq3", Label: "Shimmer:APQ3"},
		{Column: "apq5", Label: "Shimmer:APQ5"},
		{Column: "apq", Label: "MDVP:APQ"},
		{Column: "dda", Label: "Shimmer:DDA"},
		{Column: "nhr", Label: "NHR"},
		{Column: "hnr", Label: "HNR"},
		{Column: "rpde", Label: "RPDE"},
		{Column: "dfa", Label: "DFA"},
		{Column: "spread1", Label: "spread1"},
		{Column: "spread2", Label: "spread2"},
		{Column: "d2", Label: "D2"},
		{Column: "ppe", Label: "PPE"},
	},
	PositiveDiagnosis: "The person has Parkinson's disease",
	NegativeDiagnosis: "The person does not have Parkinson's disease",
}

var catalog = []*models.Disease{diabetes, heartDisease, parkinsons}

// All returns the supported diseases in menu order.
func All() []*models.Disease {
	out := make([]*models.Disease, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a disease by its URL slug.
func Lookup(slug string) (*models.Disease, bool) {
	for _, d := range catalog {
		if d.Slug == slug {
			return d, true
		}
	}
	return nil, false
}

// Diabetes, HeartDisease and Parkinsons return the individual descriptors.
func Diabetes() *models.Disease     { return diabetes }
func HeartDisease() *models.Disease { return heartDisease }
func Parkinsons() *models.Disease   { return parkinsons }
