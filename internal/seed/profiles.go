// Package seed carries a small set of approved profiles served when the
// primary store is unreachable or not configured. Reads never fail hard;
// they degrade to this dataset.
package seed

import "github.com/jobfolio/profile-intake/internal/domain"

// Profiles returns a fresh copy of the seed dataset. Callers may mutate
// the returned slice freely.
func Profiles() []domain.JobProfile {
	out := make([]domain.JobProfile, len(profiles))
	copy(out, profiles)
	for i := range out {
		tools := make([]string, len(profiles[i].ToolsUsed))
		copy(tools, profiles[i].ToolsUsed)
		out[i].ToolsUsed = tools
	}
	return out
}

// BySlug returns the seed profile with the given slug, if present.
func BySlug(slug string) (domain.JobProfile, bool) {
	for _, p := range profiles {
		if p.Slug == slug {
			return p, true
		}
	}
	return domain.JobProfile{}, false
}

var profiles = []domain.JobProfile{
	{
		ID:            "6f1f0c1e-9a64-4a8e-8c53-1f6f9f0a3d01",
		Slug:          "pediatric-nurse-x1b2c3",
		Locale:        "en",
		RoleTitle:     "Pediatric Nurse",
		Industry:      "Healthcare",
		Seniority:     "Mid",
		Location:      "Columbus, OH",
		WorkMode:      "onsite",
		SalaryRange:   "$68k-$82k",
		EducationPath: "BSN, then two years on a general medical floor before moving to pediatrics.",
		DayToDay: "Mornings start with handoff and medication rounds, then a mix of assessments, " +
			"family education, and charting. Afternoons are usually procedures and discharge planning.",
		ToolsUsed:    []string{"Epic", "Alaris pumps", "Vocera"},
		BestParts:    "Watching a scared kid relax because you explained what happens next in their words.",
		HardestParts: "Short staffing on weekends means you carry more patients than feels safe some shifts.",
		RecommendationToStudents: "Shadow a unit before you commit to a specialty. The work varies more " +
			"between floors than between hospitals.",
		YearsExperience: 6,
		SubmitterType:   "public",
		CreatedAt:       "2025-11-03T14:22:10Z",
		ApprovedAt:      "2025-11-04T09:05:44Z",
		Status:          domain.StatusApproved,
	},
	{
		ID:            "9b7d2a40-55c2-47f3-b1de-7c2a81c4e702",
		Slug:          "site-reliability-engineer-k9m2p4",
		Locale:        "en",
		RoleTitle:     "Site Reliability Engineer",
		Industry:      "Software",
		Seniority:     "Senior",
		Location:      "Remote",
		WorkMode:      "remote",
		SalaryRange:   "$150k-$185k",
		EducationPath: "CS degree, then backend roles. Moved into SRE after owning an on-call rotation.",
		DayToDay: "Half the week is project work on deployment tooling and capacity planning. The rest " +
			"is reviewing changes for reliability risk, tuning alerts, and the occasional incident.",
		ToolsUsed:    []string{"Go", "Kubernetes", "Prometheus", "Terraform"},
		BestParts:    "The feedback loop is honest. Either the pager is quiet or it is not.",
		HardestParts: "Being the person who says no to a launch date is draining, even when you are right.",
		RecommendationToStudents: "Run something real. A tiny service you operate for a year teaches " +
			"more than any course on distributed systems.",
		YearsExperience: 11,
		SubmitterType:   "anonymous",
		CreatedAt:       "2025-12-19T08:10:02Z",
		ApprovedAt:      "2025-12-19T16:41:37Z",
		Status:          domain.StatusApproved,
	},
	{
		ID:            "c2e6b8d1-03af-4e96-9a77-55d0ab9e1403",
		Slug:          "high-school-history-teacher-a7f3q9",
		Locale:        "en",
		RoleTitle:     "High School History Teacher",
		Industry:      "Education",
		Seniority:     "Mid",
		Location:      "Portland, OR",
		WorkMode:      "onsite",
		SalaryRange:   "$54k-$63k",
		EducationPath: "History BA plus a one-year teaching credential program with a semester of student teaching.",
		DayToDay: "Five class periods, one prep period, and lunch duty twice a week. Evenings go to " +
			"grading and adjusting the next day's lesson based on what landed and what did not.",
		ToolsUsed:    []string{"Google Classroom", "Canva"},
		BestParts:    "A student who hated the subject in September arguing passionately about it in March.",
		HardestParts: "The grading load never ends, and summers are shorter than people assume.",
		RecommendationToStudents: "Substitute teach first. A single week in front of a class tells you " +
			"whether the daily reality fits you.",
		YearsExperience: 8,
		SubmitterType:   "public",
		CreatedAt:       "2026-01-22T19:55:30Z",
		ApprovedAt:      "2026-01-23T07:12:05Z",
		Status:          domain.StatusApproved,
	},
	{
		ID:            "e4a91f73-6cd8-4b21-8e09-2f8c44d7b604",
		Slug:          "freight-dispatcher-m3t8v1",
		Locale:        "en",
		RoleTitle:     "Freight Dispatcher",
		Industry:      "Logistics",
		Seniority:     "Entry",
		Location:      "Memphis, TN",
		WorkMode:      "hybrid",
		SalaryRange:   "$42k-$50k",
		EducationPath: "No degree. Started at the warehouse dock and moved inside after a year.",
		DayToDay: "Assigning loads to drivers, tracking delays, and calling customers before they call " +
			"us. The phone does not stop between six in the morning and early afternoon.",
		ToolsUsed:    []string{"McLeod", "Excel", "Samsara"},
		BestParts:    "Solving a routing mess under pressure and getting every load covered by noon.",
		HardestParts: "Drivers and customers both blame dispatch when the weather ruins a schedule.",
		RecommendationToStudents: "Learn to stay calm on the phone. The logistics knowledge comes fast " +
			"once you are in the seat.",
		YearsExperience: 2,
		SubmitterType:   "anonymous",
		CreatedAt:       "2026-02-08T11:30:48Z",
		ApprovedAt:      "2026-02-09T13:02:19Z",
		Status:          domain.StatusApproved,
	},
}
