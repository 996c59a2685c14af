package content

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Generator produces prep documents from the application fields alone, with
// no network call. It is the guaranteed-success fallback behind the
// completion API: every method returns a fully populated document and cannot
// fail.
//
// The only randomness is cosmetic (funding amounts, ratings, founded years);
// it never decides which phrasing branch is taken.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator builds a generator with its own randomness source.
func NewGenerator() *Generator {
	return NewGeneratorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGeneratorWithRand injects the randomness source, for deterministic tests.
func NewGeneratorWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, now: time.Now}
}

// profile holds the classification booleans that select phrasing variants.
type profile struct {
	Startup   bool
	Technical bool
	Senior    bool
	Manager   bool
	Design    bool
	Remote    bool
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// classify derives the phrasing profile from company and position strings.
func classify(job Job) profile {
	company := strings.ToLower(job.Company)
	position := strings.ToLower(job.Position)
	location := strings.ToLower(job.Location)

	return profile{
		Startup:   containsAny(company, "labs", "ai", "io") || len(job.Company) < 10,
		Technical: containsAny(position, "engineer", "developer", "architect", "data"),
		Senior:    containsAny(position, "senior", "lead"),
		Manager:   containsAny(position, "manager", "director"),
		Design:    containsAny(position, "design", "ux", "ui"),
		Remote:    job.JobType == "Remote" || strings.Contains(location, "remote"),
	}
}

func industryFor(job Job, p profile) string {
	position := strings.ToLower(job.Position)
	switch {
	case p.Technical:
		return "Technology"
	case strings.Contains(position, "sales"):
		return "Sales & Business Development"
	case strings.Contains(position, "marketing"):
		return "Marketing & Advertising"
	case strings.Contains(position, "finance"):
		return "Financial Services"
	case strings.Contains(position, "healthcare"):
		return "Healthcare"
	default:
		return "Professional Services"
	}
}

func companySizeFor(job Job, p profile) string {
	switch {
	case p.Startup:
		return "50-200 employees"
	case len(job.Company) > 15:
		return "5000+ employees"
	case strings.Contains(job.Company, " "):
		return "1000-5000 employees"
	default:
		return "200-1000 employees"
	}
}

func skillAreaFor(job Job, p profile) string {
	position := strings.ToLower(job.Position)
	switch {
	case p.Technical:
		return "software development"
	case p.Design:
		return "design"
	case strings.Contains(position, "sales"):
		return "sales"
	case strings.Contains(position, "marketing"):
		return "marketing"
	default:
		return "your field"
	}
}

func experienceFor(p profile) string {
	if p.Senior {
		return "5+ years"
	}
	return "3-5 years"
}

// Research builds a company-research document from name and role heuristics.
func (g *Generator) Research(job Job) CompanyResearch {
	p := classify(job)
	industry := industryFor(job, p)

	location := job.Location
	if location == "" {
		location = "Multiple locations"
	}

	founded := fmt.Sprintf("%d", 1990+g.rng.Intn(20))
	if p.Startup {
		founded = fmt.Sprintf("%d", 2018+g.rng.Intn(6))
	}

	description := fmt.Sprintf(
		"%s is a %s in the %s space, known for %s. The company focuses on %s and has built a reputation for %s.",
		job.Company,
		pick(p.Startup, "fast-growing startup", "well-established company"),
		strings.ToLower(industry),
		pick(p.Startup, "innovative solutions and rapid growth", "market leadership and stability"),
		pick(p.Technical, "cutting-edge technology solutions", "delivering exceptional value to clients"),
		pick(p.Startup, "disrupting traditional approaches", "consistent excellence and reliability"),
	)

	values := []string{"Integrity", "Excellence", "Collaboration", "Customer Success", "Continuous Learning"}
	if p.Startup {
		values = []string{"Innovation First", "Move Fast", "Own Your Impact", "Radical Transparency", "Customer Obsession"}
	}

	workEnvironment := fmt.Sprintf(
		"%s offers a %s work environment where %s. The culture emphasizes %s. %s",
		job.Company,
		pick(p.Startup, "dynamic, fast-paced", "structured yet flexible"),
		pick(p.Startup, "creativity and initiative are highly valued", "professional growth and work-life balance are prioritized"),
		pick(p.Startup, "rapid iteration, bold ideas, and personal ownership", "teamwork, strategic thinking, and sustainable growth"),
		pick(p.Remote,
			"With a remote-first approach, the company has built strong virtual collaboration practices.",
			fmt.Sprintf("The %s office features modern amenities and collaborative spaces.", location)),
	)

	benefits := []string{
		"Comprehensive health benefits",
		"401(k) with 6% match",
		"20 days PTO + holidays",
		"Professional development programs",
		"Tuition reimbursement",
		"Employee stock purchase plan",
		"Wellness programs",
	}
	if p.Startup {
		benefits = []string{
			"Competitive equity packages",
			"Unlimited PTO policy",
			"Top-tier health, dental, and vision insurance",
			"$1,500 annual learning budget",
			"Remote work flexibility",
			"Latest tech equipment",
			"Monthly wellness stipend",
		}
	}

	var rounds []string
	if p.Technical {
		rounds = []string{
			"Initial recruiter screen (30 min) - Culture fit and basic qualifications",
			"Technical phone screen (45 min) - Coding or system design basics",
			"Take-home assignment (2-4 hours) - Real-world problem solving",
			fmt.Sprintf("On-site/Virtual loop (4-5 hours) - Technical deep dive with the %s team, system design with senior engineers, behavioral interview with the hiring manager, culture fit with cross-functional partners", job.Position),
			fmt.Sprintf("Final interview with %s (30 min)", pick(p.Startup, "founder/CTO", "department head")),
		}
	} else {
		rounds = []string{
			fmt.Sprintf("HR phone screen (30 min) - Background and interest in %s", job.Company),
			"Hiring manager interview (45 min) - Role-specific discussion",
			"Team interviews (2-3 hours) - Meet potential colleagues",
			"Case study or presentation (if applicable)",
			"Final round with leadership (30-45 min)",
		}
	}

	timeline := fmt.Sprintf(
		"%s from initial contact to offer. %s aims to move quickly while ensuring thorough evaluation.",
		pick(p.Startup, "1-2 weeks", "2-4 weeks"),
		job.Company,
	)

	tips := []string{
		fmt.Sprintf("Research %s's recent %s", job.Company,
			pick(p.Startup, "funding rounds and product launches", "quarterly reports and strategic initiatives")),
		fmt.Sprintf("Prepare specific examples that demonstrate %s",
			pick(p.Technical, "technical problem-solving and system thinking", "business impact and leadership")),
		fmt.Sprintf("Show genuine interest in %s's %s", job.Company,
			pick(p.Startup, "mission to disrupt the industry", "long-term vision and values")),
		fmt.Sprintf("Ask thoughtful questions about %s",
			pick(p.Startup, "growth trajectory and technical challenges", "team dynamics and career development")),
		fmt.Sprintf("Be ready to discuss why %s specifically, not just the role", job.Company),
	}

	var news []string
	if p.Startup {
		series := []string{"A", "B", "C"}[g.rng.Intn(3)]
		news = append(news, fmt.Sprintf("%s raises $%dM in Series %s funding to accelerate growth",
			job.Company, 20+g.rng.Intn(80), series))
	} else {
		news = append(news, fmt.Sprintf("%s reports strong Q4 results with %d%% year-over-year growth",
			job.Company, 10+g.rng.Intn(20)))
	}
	news = append(news, fmt.Sprintf("%s launches new %s to enhance %s", job.Company,
		pick(p.Technical, "AI-powered platform", "strategic initiative"),
		pick(p.Technical, "developer productivity", "customer experience")))
	if p.Startup {
		expansion := "engineering hub"
		if job.Location != "" {
			expansion = "office in " + job.Location
		}
		news = append(news, fmt.Sprintf("%s expands team by 50%% and opens new %s", job.Company, expansion))
	} else {
		news = append(news, fmt.Sprintf("%s recognized as a 'Best Place to Work' in %d", job.Company, g.now().Year()))
	}
	news = append(news, fmt.Sprintf("%s partners with %s to expand market reach", job.Company,
		pick(p.Startup, "major enterprise clients", "innovative startups")))

	rating := fmt.Sprintf("%.1f", 3.9+g.rng.Float64()*0.8)
	if p.Startup {
		rating = fmt.Sprintf("%.1f", 3.8+g.rng.Float64()*0.6)
	}

	pros := []string{
		"Stable company with good work-life balance",
		"Excellent benefits and compensation",
		"Professional development opportunities",
		"Collaborative team environment",
		"Clear career progression paths",
	}
	cons := []string{
		"Can be slow to adopt new technologies",
		"Large company bureaucracy",
		"Limited remote work options in some teams",
		"Promotion process can be lengthy",
	}
	if p.Startup {
		pros = []string{
			"Cutting-edge technology and interesting problems",
			"Smart, passionate colleagues",
			"High growth potential and learning opportunities",
			"Flexible work arrangements",
			"Strong equity compensation",
		}
		cons = []string{
			"Fast-paced environment can be stressful",
			"Priorities can shift quickly",
			"Work-life balance during crunch times",
			"Growing pains as company scales",
		}
	}

	return CompanyResearch{
		SchemaVersion: SchemaVersion,
		Overview: CompanyOverview{
			Industry:     industry,
			Size:         companySizeFor(job, p),
			Founded:      founded,
			Headquarters: location,
			Description:  description,
		},
		Culture: CompanyCulture{
			Values:          values,
			WorkEnvironment: workEnvironment,
			Benefits:        benefits,
		},
		InterviewProcess: InterviewProcess{
			Rounds:   rounds,
			Timeline: timeline,
			Tips:     tips,
		},
		RecentNews: news,
		Glassdoor: GlassdoorInsights{
			Rating: rating,
			Pros:   pros,
			Cons:   cons,
		},
	}
}

// Questions builds an interview-questions document. Technical roles get a
// study guide for the technical section; everyone else gets a question list
// matched to the role family.
func (g *Generator) Questions(job Job) InterviewQuestions {
	p := classify(job)

	behavioral := []string{
		fmt.Sprintf("Tell me about a time you had to work with a difficult team member while working on a %s project.", job.Position),
		fmt.Sprintf("Describe a situation where you had to meet a tight deadline in your %s role.", job.Position),
		"How do you prioritize tasks when everything seems urgent?",
		"Give me an example of when you had to learn something completely new for your job.",
		"Tell me about a time you had to adapt to a significant change at work.",
	}
	if p.Senior {
		behavioral = append(behavioral, "Tell me about a time you mentored a colleague through a difficult project.")
	}
	if p.Manager {
		behavioral = append(behavioral, "Describe how you handled an underperforming member of your team.")
	}

	var technical TechnicalSection
	switch {
	case p.Technical:
		technical = TechnicalSection{Guide: &TechnicalGuide{
			FocusAreas: pickList(p.Startup,
				[]string{"Practical coding", "System design under constraints", "Shipping quickly"},
				[]string{"Algorithms", "System design", "Coding fundamentals"}),
			KeyTopics: []string{
				fmt.Sprintf("Technologies relevant to %s", job.Position),
				"Data structures",
				"Debugging and troubleshooting",
			},
			InterviewStyle: pickList(p.Startup,
				[]string{"Pair programming", "Take-home project", "Architecture discussion"},
				[]string{"Whiteboard coding", "Behavioral discussion", "System design session"}),
			CompanyValues: []string{"Clean code", "Clear communication", "Problem-solving approach"},
			PrepRecommendations: []string{
				fmt.Sprintf("Review %s core technologies", job.Position),
				"Practice explaining technical concepts",
				"Prepare examples of problem-solving",
			},
		}}
	case p.Design:
		technical = TechnicalSection{Questions: []string{
			"Walk me through your design process from brief to handoff.",
			"How do you incorporate user feedback into your iterations?",
			"Tell me about a design decision you defended with data.",
			"Which piece in your portfolio best represents how you work, and why?",
		}}
	case p.Manager:
		technical = TechnicalSection{Questions: []string{
			"How do you set priorities for your team each quarter?",
			"Describe your approach to performance reviews and feedback.",
			"How do you balance stakeholder demands against team capacity?",
			"What signals tell you a project is heading off track?",
		}}
	default:
		technical = TechnicalSection{Questions: []string{
			fmt.Sprintf("What tools and methods keep you effective in %s work?", skillAreaFor(job, p)),
			"How do you measure success in your work?",
			"Describe a process you improved and the impact it had.",
			"How do you stay current with developments in your field?",
		}}
	}

	roleSpecific := []string{
		fmt.Sprintf("What specifically interests you about the %s role at %s?", job.Position, job.Company),
		"How does this position align with your career goals?",
		fmt.Sprintf("What unique value would you bring to our %s team?", job.Position),
		fmt.Sprintf("What do you think will be the biggest challenges in this %s role?", job.Position),
		"How would you approach your first 90 days in this position?",
	}

	company := []string{
		fmt.Sprintf("What attracts you to %s specifically?", job.Company),
		fmt.Sprintf("Why %s over other companies in the same industry?", job.Company),
		fmt.Sprintf("What do you know about %s's culture and values?", job.Company),
		fmt.Sprintf("How do you see %s evolving in the next few years?", job.Company),
		fmt.Sprintf("What questions do you have about %s's products or services?", job.Company),
	}
	if p.Startup {
		company[3] = fmt.Sprintf("Where do you see %s's growth trajectory taking it over the next few years?", job.Company)
		company[4] = fmt.Sprintf("What would you want to know about %s's funding and runway?", job.Company)
	}

	return InterviewQuestions{
		SchemaVersion: SchemaVersion,
		Behavioral:    behavioral,
		Technical:     technical,
		RoleSpecific:  roleSpecific,
		Company:       company,
	}
}

// Prep builds a personalized-prep document of talking points.
func (g *Generator) Prep(job Job) PersonalizedPrep {
	p := classify(job)
	experience := experienceFor(p)
	skillArea := skillAreaFor(job, p)

	tellMeAboutYourself := []string{
		fmt.Sprintf("Open with your %s experience: %s specializing in %s.", job.Position, experience, skillArea),
		pick(p.Technical,
			"Mention a recent win, like a feature you led that measurably improved performance.",
			"Mention a recent win, like a project you drove that measurably improved team results."),
		fmt.Sprintf("Connect your background to %s: %s.", job.Company,
			pick(p.Startup,
				"you thrive in fast-paced environments where you can make a direct impact",
				"you want to contribute to a company known for innovation and excellence")),
		fmt.Sprintf("Close with why this role is the right next step, combining your expertise with your passion for %s.",
			pick(p.Technical, "solving complex problems", "delivering exceptional results")),
	}

	whyThisCompany := []string{
		fmt.Sprintf("Tie %s's work in %s to your own experience in %s.", job.Company,
			pick(p.Technical, "cutting-edge technology", "industry leadership"), skillArea),
		fmt.Sprintf("Reference their culture of %s and how it matches your values.",
			pick(p.Startup, "innovation, agility, and ownership", "collaboration, integrity, and continuous learning")),
		fmt.Sprintf("Explain what this %s role lets you do: %s.", job.Position,
			pick(p.Senior,
				"lead strategic initiatives and mentor the next generation of talent",
				"grow your skills while making meaningful contributions to impactful projects")),
	}

	strength := []string{
		pick(p.Technical,
			"Lead with your ability to architect solutions that balance technical excellence with business needs.",
			"Lead with your ability to build relationships and drive results through collaboration."),
		pick(p.Technical,
			"Back it with a concrete example, e.g. a design that cut deployment time while improving reliability.",
			"Back it with a concrete example, e.g. aligning stakeholders with competing priorities to deliver ahead of schedule."),
		fmt.Sprintf("Explain why it matters at %s: %s.", job.Company,
			pick(p.Startup,
				"a fast-growing company needs people who balance multiple priorities and think systemically",
				"success in complex organizations takes both competence and strong collaborative skills")),
	}

	weakness := []string{
		pick(p.Technical,
			"Pick a real one, such as balancing perfectionism with delivery speed.",
			"Pick a real one, such as delegating complex tasks instead of handling them yourself."),
		pick(p.Technical,
			"Describe the fix: time-boxing and regular code reviews to keep quality without losing velocity.",
			"Describe the fix: structured delegation with clear specifications and regular check-ins."),
		"Show the progress you have already made and frame it as ongoing growth.",
	}

	questionsToAsk := []string{
		fmt.Sprintf("What does success look like in this %s role in the first 90 days?", job.Position),
		pick(p.Technical,
			"What are the biggest technical challenges facing the team right now?",
			"What are the biggest challenges facing the team right now?"),
		"Can you tell me about the team I'd be working with and how this role fits into the broader organization?",
		fmt.Sprintf("What opportunities for professional growth and learning does %s offer?", job.Company),
		fmt.Sprintf("How does %s approach %s?", job.Company,
			pick(p.Technical, "code quality and technical debt", "performance management and career development")),
		fmt.Sprintf("What do you enjoy most about working at %s?", job.Company),
		"How has the company culture evolved as you've grown?",
	}

	targetRange := job.SalaryRange
	if targetRange == "" {
		targetRange = "$80k-$120k"
	}
	area := job.Location
	if area == "" {
		area = "this area"
	}
	salaryNegotiation := []string{
		fmt.Sprintf("Anchor on researched market rates for %s roles in %s and your %s of experience; a range like %s keeps the conversation open.",
			job.Position, area, experience, targetRange),
		pick(p.Startup,
			"Weigh the equity opportunity and the chance to grow with the company, not just base salary.",
			"Weigh the full benefits package and long-term growth potential, not just base salary."),
		"Stay open on structure and restate the value you bring before discussing numbers.",
	}

	return PersonalizedPrep{
		SchemaVersion:       SchemaVersion,
		TellMeAboutYourself: tellMeAboutYourself,
		WhyThisCompany:      whyThisCompany,
		Strength:            strength,
		Weakness:            weakness,
		QuestionsToAsk:      questionsToAsk,
		SalaryNegotiation:   salaryNegotiation,
	}
}

// pick chooses between the two phrasings of a branch.
func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func pickList(cond bool, yes, no []string) []string {
	if cond {
		return yes
	}
	return no
}
