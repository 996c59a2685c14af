package ai

import (
	"fmt"
	"strings"
)

const questionsSystemPrompt = "You are a senior hiring manager and interview specialist who has conducted 500+ interviews at top tech companies. You understand each company's unique interview style, what they actually look for, and the real questions they ask. Generate questions that feel authentic to each company's interview process, not generic template questions. Always respond with valid JSON format."

const researchSystemPrompt = "You are a senior career strategist and company research specialist. Provide detailed, accurate insights about companies that will help job candidates prepare effectively for interviews. Always respond with valid JSON only - no other text."

const prepSystemPrompt = "You are an executive interview coach with expertise in helping professionals craft compelling, authentic responses. Create personalized content that feels natural and genuine, not generic or templated. Use storytelling principles and the STAR method where appropriate. Focus on actionable advice."

func questionsUserPrompt(p QuestionsParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I'm preparing for an interview at %s for a %s role", p.Company, p.Position)
	if p.JobType != "" {
		fmt.Fprintf(&b, " (%s)", p.JobType)
	}
	if p.JobDescription != "" {
		fmt.Fprintf(&b, ". Job requirements: %s", p.JobDescription)
	} else {
		b.WriteString(".")
	}
	fmt.Fprintf(&b, `

Generate interview questions that reflect %[1]s's actual interview style and this specific role:

**Behavioral Questions (5-6 questions):**
- Use %[1]s's known leadership principles/values in scenarios
- Include situations specific to %[2]s responsibilities
- Ask about handling real challenges this role faces
- Include follow-up probing questions that interviewers actually ask

**Technical Interview Prep Focus:**
- What technical areas %[1]s typically emphasizes
- Specific topics to study based on %[1]s's known interview style
- Interview format %[1]s uses (whiteboard, pair programming, take-home, live coding, etc.)
- Concrete preparation recommendations tailored to %[1]s's process

**Role-Specific Questions (5-6 questions):**
- Ask about specific scenarios this %[2]s would encounter
- Include questions about collaboration with other teams/roles
- Ask about prioritization and decision-making in this context

**Company-Specific Questions (4-5 questions):**
- Reference specific products, services, or recent company news
- Ask about %[1]s's mission/values and personal alignment
- Include questions about why %[1]s vs competitors

Make questions challenging but fair and avoid generic questions that could apply to any company or role.

IMPORTANT: Return ONLY a valid JSON object with exactly these keys: behavioral, technical, roleSpecific, company. Do not include any explanatory text before or after the JSON.

Example format:
{
  "behavioral": ["Question 1", "Question 2"],
  "technical": {
    "focus_areas": ["algorithms", "system design"],
    "key_topics": ["trees and graphs", "distributed systems"],
    "interview_style": ["whiteboard coding", "pair programming"],
    "company_values": ["clean code", "problem-solving approach"],
    "prep_recommendations": ["Practice LeetCode medium", "Study system design"]
  },
  "roleSpecific": ["Question 1", "Question 2"],
  "company": ["Question 1", "Question 2"]
}`, p.Company, p.Position)
	return b.String()
}

func researchUserPrompt(p ResearchParams) string {
	role := ""
	if p.Position != "" {
		role = fmt.Sprintf(" for %s role", p.Position)
	}
	return fmt.Sprintf(`Research %s%s.

RESPOND WITH ONLY VALID JSON - NO OTHER TEXT:

{
  "industry": "Technology",
  "size": "500-1000 employees",
  "founded": "2010",
  "headquarters": "San Francisco, CA",
  "description": "Brief 1-2 sentence company description",
  "values": ["Innovation", "Teamwork", "Excellence"],
  "work_culture": "Single sentence about work environment",
  "interview_rounds": ["Phone Screen", "Technical", "Final Round"],
  "interview_timeline": "2-3 weeks",
  "recent_news": ["Recent development 1", "Recent development 2", "Recent development 3"],
  "employee_pros": ["Good benefit 1", "Good benefit 2", "Good benefit 3"],
  "employee_cons": ["Challenge 1", "Challenge 2"]
}

Keep responses concise. Return valid JSON only.`, p.Company, role)
}

func prepUserPrompt(p PrepParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Interview prep tips for %s %s role", p.Company, p.Position)
	if p.UserBackground != "" {
		fmt.Fprintf(&b, ". Background: %s", p.UserBackground)
	}
	if p.JobDescription != "" {
		fmt.Fprintf(&b, ". Job: %s", p.JobDescription)
	}
	b.WriteString(`.

RESPOND WITH ONLY VALID JSON - NO OTHER TEXT:

{
  "tell_me_about_yourself_tips": ["Key talking point 1", "Key talking point 2", "Key talking point 3"],
  "why_this_company_tips": ["Research point to mention", "Company value that resonates", "Specific reason for interest"],
  "strength_tips": ["Relevant strength for role", "How to demonstrate it", "Example situation to mention"],
  "weakness_tips": ["Honest weakness to share", "How you're improving it", "Progress you've made"],
  "questions_to_ask": ["Thoughtful question 1", "Thoughtful question 2", "Thoughtful question 3", "Thoughtful question 4", "Thoughtful question 5"],
  "salary_negotiation_tips": ["Research tip", "Timing tip", "Negotiation approach"]
}

Focus on actionable talking points and strategic tips, not scripted answers.`)
	return b.String()
}
