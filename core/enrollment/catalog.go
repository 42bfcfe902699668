package enrollment

// Kind of a curriculum module.
type Kind string

const (
	KindOfferLetter Kind = "offer_letter"
	KindAssignment  Kind = "assignment"
	KindQuiz        Kind = "quiz"
	KindProject     Kind = "project"
)

// Module describes one step of a curriculum. Its Index defines the unlock order.
type Module struct {
	Index                  int    `json:"index"`
	Title                  string `json:"title"`
	Description            string `json:"description"`
	AssignmentDescription  string `json:"assignment_description,omitempty"`
	Week                   int    `json:"week"`
	VideoURL               string `json:"video_url,omitempty"`
	Kind                   Kind   `json:"kind"`
	RequiresRepositoryLink bool   `json:"requires_repository_link"`
	RequiresHostingLink    bool   `json:"requires_hosting_link"`
}

// Package is an internship offering. ListPrice is display data only.
type Package struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ListPrice  int      `json:"list_price"`
	Accent     string   `json:"accent"`
	Benefits   []string `json:"benefits"`
	Curriculum []Module `json:"modules"`
}

func (p Package) ModuleCount() int { return len(p.Curriculum) }

// Module returns the module at index i of the package's curriculum.
func (p Package) Module(i int) (Module, bool) {
	if i < 0 || i >= len(p.Curriculum) {
		return Module{}, false
	}
	return p.Curriculum[i], true
}

type Domain struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var (
	Domains = []Domain{
		{ID: "frontend", Name: "Frontend Development", Description: "React, Vue, Angular, and modern web technologies"},
		{ID: "backend", Name: "Backend Development", Description: "Node.js, Python, Java, and server-side technologies"},
		{ID: "fullstack", Name: "Fullstack Development", Description: "Complete web application development"},
		{ID: "uiux", Name: "UI/UX Design", Description: "User interface and experience design"},
		{ID: "aiml", Name: "AI/ML", Description: "Artificial Intelligence and Machine Learning"},
	}

	YearsOfStudy = []string{"1st", "2nd", "3rd", "4th", "graduate"}

	standardCurriculum = []Module{
		{
			Index:       0,
			Title:       "Offer Letter",
			Description: "Download your official offer letter and get started with your internship",
			Week:        1,
			Kind:        KindOfferLetter,
		},
		{
			Index:                  1,
			Title:                  "Foundations",
			Description:            "Learn the basics of your chosen domain with hands-on assignments",
			AssignmentDescription:  "Create a basic project demonstrating fundamental concepts",
			Week:                   1,
			Kind:                   KindAssignment,
			RequiresRepositoryLink: true,
			RequiresHostingLink:    true,
		},
		{
			Index:       2,
			Title:       "Intermediate Skills",
			Description: "Check your understanding of the core concepts before moving on to the project",
			Week:        2,
			Kind:        KindQuiz,
		},
		{
			Index:                  3,
			Title:                  "Project Phase 1",
			Description:            "Start working on your capstone project",
			AssignmentDescription:  "Plan and implement the first phase of your final project",
			Week:                   3,
			Kind:                   KindProject,
			RequiresRepositoryLink: true,
			RequiresHostingLink:    true,
		},
		{
			Index:                  4,
			Title:                  "Project Phase 2",
			Description:            "Complete your capstone project",
			AssignmentDescription:  "Finalize your project with the features agreed with your mentor",
			Week:                   4,
			Kind:                   KindProject,
			RequiresRepositoryLink: true,
			RequiresHostingLink:    true,
		},
		{
			Index:                 5,
			Title:                 "Professional Presentation",
			Description:           "Present your work to the GigLabs team and receive your certificate",
			AssignmentDescription: "Share your slides or a short recording of your presentation",
			Week:                  4,
			Kind:                  KindAssignment,
		},
	}

	fastTrackCurriculum = []Module{
		{
			Index:       0,
			Title:       "Offer Letter & Welcome",
			Description: "Download your official offer letter and get started with your internship",
			Week:        1,
			Kind:        KindOfferLetter,
		},
		{
			Index:                  1,
			Title:                  "Foundation",
			Description:            "Learn the basics of your chosen domain with hands-on assignments",
			AssignmentDescription:  "Create a basic project demonstrating fundamental concepts",
			Week:                   1,
			VideoURL:               "https://youtube.com/watch?v=example",
			Kind:                   KindAssignment,
			RequiresRepositoryLink: true,
			RequiresHostingLink:    true,
		},
		{
			Index:                  2,
			Title:                  "Intermediate Concepts",
			Description:            "Dive deeper into advanced topics with practical implementation",
			AssignmentDescription:  "Build upon your foundation project with advanced features",
			Week:                   2,
			VideoURL:               "https://youtube.com/watch?v=example2",
			Kind:                   KindAssignment,
			RequiresRepositoryLink: true,
			RequiresHostingLink:    true,
		},
		{
			Index:                  3,
			Title:                  "Project Phase 1",
			Description:            "Start working on your capstone project",
			AssignmentDescription:  "Plan and implement the first phase of your final project",
			Week:                   3,
			VideoURL:               "https://youtube.com/watch?v=example3",
			Kind:                   KindProject,
			RequiresRepositoryLink: true,
			RequiresHostingLink:    true,
		},
		{
			Index:                  4,
			Title:                  "Project Phase 2 & Completion",
			Description:            "Complete your project and receive your certificate",
			AssignmentDescription:  "Finalize your project and prepare for presentation",
			Week:                   4,
			VideoURL:               "https://youtube.com/watch?v=example4",
			Kind:                   KindProject,
			RequiresRepositoryLink: true,
			RequiresHostingLink:    true,
		},
	}

	Packages = []Package{
		{
			ID:         "basic",
			Name:       "Basic Internship",
			ListPrice:  499,
			Accent:     "blue",
			Benefits:   []string{"Offer Letter", "Experience Certificate", "Live Classes"},
			Curriculum: standardCurriculum,
		},
		{
			ID:         "advanced",
			Name:       "Advanced Internship",
			ListPrice:  899,
			Accent:     "purple",
			Benefits:   []string{"Offer Letter", "Experience Certificate", "Live Classes", "Real Projects", "Industry Meetings"},
			Curriculum: standardCurriculum,
		},
		{
			ID:         "summer",
			Name:       "Summer Internship",
			ListPrice:  1000,
			Accent:     "orange",
			Benefits:   []string{"Offer Letter", "Experience Certificate", "Live Classes", "Real Projects", "Fast-track curriculum"},
			Curriculum: fastTrackCurriculum,
		},
		{
			ID:        "professional",
			Name:      "Professional Internship",
			ListPrice: 3000,
			Accent:    "green",
			Benefits: []string{
				"Offer Letter", "Experience Certificate", "Live Classes", "Real Projects", "Industry Meetings",
				"Job Opportunity", "24/7 Support",
			},
			Curriculum: standardCurriculum,
		},
		{
			ID:        "elite",
			Name:      "Elite Program",
			ListPrice: 5000,
			Accent:    "gold",
			Benefits: []string{
				"Offer Letter", "Experience Certificate", "Live Classes", "Real Projects", "Industry Meetings",
				"Job Opportunity", "24/7 Support", "Money Back for the first 10 completers",
			},
			Curriculum: standardCurriculum,
		},
	}

	packagesByID = func() map[string]Package {
		m := make(map[string]Package, len(Packages))
		for _, p := range Packages {
			m[p.ID] = p
		}
		return m
	}()
)

// GetPackage looks a package up by id.
func GetPackage(id string) (Package, bool) {
	p, ok := packagesByID[id]
	return p, ok
}

func GetDomain(id string) (Domain, bool) {
	for _, d := range Domains {
		if d.ID == id {
			return d, true
		}
	}
	return Domain{}, false
}

// MaxModuleCount is the length of the longest curriculum.
func MaxModuleCount() int {
	var max int
	for _, p := range Packages {
		if n := p.ModuleCount(); n > max {
			max = n
		}
	}
	return max
}
