package content

import (
	"portfolio_app_echo/internal/contact"
	"portfolio_app_echo/internal/models"
)

const (
	ownerEmail  = "daniyalmurtaza77@gmail.com"
	ownerPhone  = "tel:+18329886552"
	githubURL   = "https://github.com/Daniyal-Murtaza"
	linkedInURL = "https://www.linkedin.com/in/daniyal-murtaza/"
)

func mailto(address, subject string) string {
	return contact.MailtoURL(address, subject, "")
}

// Default returns the built-in site content
func Default() *Site {
	return &Site{
		Profile: Profile{
			FirstName: "Daniyal",
			LastName:  "Murtaza",
			Greeting:  "👋 Hello, I'm",
			Bio: "Passionate Software Engineer with a proven record in secure full-stack development, " +
				"API design, DevOps, and AI/ML integrations. Currently engineering software at Encore Pay " +
				"while pursuing my Master's at Georgia Tech.",
			Tagline: "Software Engineer crafting digital solutions that matter. " +
				"From AI/ML to full-stack development, I build the future one line of code at a time.",
			Location:   "Houston, TX, USA",
			City:       "Houston, TX",
			Email:      ownerEmail,
			Phone:      "+1 (832) 988-6552",
			PhoneHref:  ownerPhone,
			AvatarURL:  "/static/img/avatar.svg",
			ResumePath: "/resume.pdf",
			GitHubURL:  githubURL,
			BookingURL: "https://calendly.com/daniyalmurtaza77",
		},
		Roles: []string{
			"Software Engineer",
			"AI/ML Specialist",
			"Full-Stack Developer",
			"IEEE Published Author",
			"DevOps Engineer",
		},
		NavItems: []Link{
			{Label: "Home", Href: "#home"},
			{Label: "About", Href: "#about"},
			{Label: "Projects", Href: "#projects"},
			{Label: "Contact", Href: "#contact"},
		},
		Journey: []string{
			"I'm a Software Engineer based in Houston, TX, with extensive experience in IT Support, Web Development, and DevOps.",
			"Currently working at Encore Pay in the fintech space, I hold a B.S. in Computer Science and will begin my M.S. at Georgia Tech in Spring 2026.",
			"My tech journey spans developing full-stack platforms, automating business processes, and supporting enterprise systems. " +
				"I thrive on solving problems at scale, from building secure e-commerce platforms to optimizing system uptime in financial institutions.",
		},
		Drives: []string{
			`I believe in "Engineering Software That Matters" - building solutions that create real impact and drive meaningful change.`,
			"My expertise lies in bridging the gap between complex technical requirements and user-friendly solutions, with a focus on security, scalability, and performance.",
			"From publishing IEEE research papers to developing nonprofit management platforms, I'm passionate about using technology to solve real-world problems and make a positive impact.",
		},
		Badges: []string{"Houston, TX", "Available for Projects"},
		Achievements: []Achievement{
			{Icon: "code", Title: "Full-Stack Expert", Description: "Developed 15+ production applications using modern tech stacks", Metric: "15+ Apps"},
			{Icon: "brain", Title: "AI/ML Specialist", Description: "Published IEEE research paper on AI and security applications", Metric: "IEEE Published"},
			{Icon: "shield", Title: "Security Focus", Description: "Expert in cybersecurity tools and secure development practices", Metric: "Security+"},
			{Icon: "globe", Title: "Global Impact", Description: "Built platforms serving users across multiple countries", Metric: "Worldwide"},
			{Icon: "zap", Title: "Performance Driven", Description: "Optimized systems for 99.9% uptime and sub-second response times", Metric: "99.9% Uptime"},
			{Icon: "cpu", Title: "DevOps Pipeline", Description: "Automated CI/CD pipelines reducing deployment time by 80%", Metric: "80% Faster"},
		},
		SkillGroups: []SkillGroup{
			{Name: "Languages", Skills: []string{"Python", "JavaScript", "TypeScript", "C++", "SQL", "C#"}},
			{Name: "Frontend", Skills: []string{"React.js", "Next.js", "Flutter", "Bootstrap", "Tailwind CSS"}},
			{Name: "Backend", Skills: []string{"Node.js", "Laravel", "Django", "Flask", "Unity"}},
			{Name: "Cloud & DevOps", Skills: []string{"AWS", "GCP", "Docker", "CI/CD", "GitHub Actions"}},
			{Name: "AI/ML", Skills: []string{"TensorFlow", "OpenCV", "LangChain", "LLMs", "RAG", "Prompt Engineering"}},
			{Name: "Databases", Skills: []string{"MySQL", "PostgreSQL", "MongoDB", "Firebase", "MariaDB"}},
			{Name: "Security", Skills: []string{"Nmap", "Wireshark", "Burp Suite", "Metasploit"}},
			{Name: "Tools", Skills: []string{"Git", "Figma", "Miro", "Adobe Creative Suite", "Jira"}},
		},
		Projects: defaultProjects(),
		ContactInfo: []Link{
			{Icon: "mail", Label: "Email", Value: ownerEmail, Href: "mailto:" + ownerEmail},
			{Icon: "phone", Label: "Phone", Value: "+1 (832) 988-6552", Href: ownerPhone},
			{Icon: "map-pin", Label: "Location", Value: "Houston, TX, USA", Href: "https://maps.google.com/?q=Houston,TX"},
		},
		SocialLinks: []Link{
			{Icon: "github", Label: "GitHub", Href: githubURL, Value: "@Daniyal-Murtaza", External: true},
			{Icon: "linkedin", Label: "LinkedIn", Href: linkedInURL, Value: "daniyal-murtaza", External: true},
			{Icon: "mail", Label: "Email", Href: "mailto:" + ownerEmail, External: true},
			{Icon: "phone", Label: "Phone", Href: ownerPhone, External: true},
		},
		QuickActions: []Link{
			{Icon: "mail", Label: "Send Email Directly", Href: mailto(ownerEmail, "Project Inquiry")},
			{Icon: "phone", Label: "Schedule a Call", Href: ownerPhone},
			{Icon: "calendar", Label: "Book Meeting", Href: "https://calendly.com/daniyalmurtaza77", External: true},
			{Icon: "send", Label: "Start a Project", Href: mailto(ownerEmail, "Let's Build Something Amazing")},
		},
		FooterSections: []FooterSection{
			{
				Title: "Quick Links",
				Links: []Link{
					{Label: "About Me", Href: "#about"},
					{Label: "Projects", Href: "#projects"},
					{Label: "Contact", Href: "#contact"},
					{Label: "Resume", Href: "/resume.pdf", External: true},
				},
			},
			{
				Title: "Technologies",
				Links: []Link{
					{Label: "React & Next.js", Href: "#"},
					{Label: "Python & AI/ML", Href: "#"},
					{Label: "AWS & DevOps", Href: "#"},
					{Label: "Full-Stack Development", Href: "#"},
				},
			},
			{
				Title: "Connect",
				Links: []Link{
					{Label: "GitHub", Href: githubURL, External: true},
					{Label: "LinkedIn", Href: linkedInURL, External: true},
					{Label: "Email", Href: "mailto:" + ownerEmail, External: true},
					{Label: "Phone", Href: ownerPhone, External: true},
				},
			},
		},
	}
}

func defaultProjects() []models.Project {
	return []models.Project{
		{
			ID:          "serve-pakistan-foundation",
			Title:       "Serve Pakistan Foundation",
			Description: "A comprehensive nonprofit management platform built for Serve Pakistan Foundation with Firebase hosting. Features donation tracking, volunteer management, and event coordination.",
			Tech:        []string{"HTML", "CSS", "JavaScript", "Firebase"},
			Category:    models.CategoryWebApp,
			GitHubURL:   githubURL + "/ServePakistanFoundation",
			DemoURL:     "https://servepakistanfoundation.web.app",
			Stars:       8,
			Forks:       3,
			Featured:    true,
		},
		{
			ID:          "asteroids-point-zero",
			Title:       "Asteroids Point Zero",
			Description: "An improved version of the classic 90's arcade game 'The Asteroids'. Single-player space game with modern graphics and enhanced gameplay mechanics.",
			Tech:        []string{"C++", "OpenGL", "Game Development"},
			Category:    models.CategoryGame,
			GitHubURL:   githubURL + "/asteroids-point-zero",
			Stars:       12,
			Forks:       5,
			Featured:    true,
		},
		{
			ID:          "goruto",
			Title:       "Goruto - Anime Platform",
			Description: "Full-fledged anime website with streaming capabilities, episode downloads, rating system, and discussion platform. Built with modern web technologies.",
			Tech:        []string{"CSS", "JavaScript", "PHP", "MySQL"},
			Category:    models.CategoryWebApp,
			GitHubURL:   githubURL + "/Goruto",
			Stars:       15,
			Forks:       7,
			Featured:    true,
		},
		{
			ID:          "travel-website",
			Title:       "Travel Booking Website",
			Description: "Aesthetic travel website offering comprehensive travel information, booking capabilities, and safety guidelines for travelers.",
			Tech:        []string{"HTML", "CSS", "JavaScript", "Bootstrap"},
			Category:    models.CategoryFrontend,
			GitHubURL:   githubURL + "/Travel-website",
			Stars:       6,
			Forks:       2,
		},
		{
			ID:          "charity-management-system",
			Title:       "Charity Management System",
			Description: "Desktop application for charity/donation/NGO management with intuitive UI/UX. Features donor management, fund tracking, and reporting systems.",
			Tech:        []string{"C#", "WPF", ".NET", "SQL Server"},
			Category:    models.CategoryDesktopApp,
			GitHubURL:   githubURL + "/charity-management-system",
			Stars:       10,
			Forks:       4,
		},
		{
			ID:          "flying-over-itt",
			Title:       "Flying Over ITT",
			Description: "Interactive graphics simulation where users can create and animate pigeons, bees, or butterflies with fascinating flight patterns and behaviors.",
			Tech:        []string{"C++", "Graphics", "Animation"},
			Category:    models.CategoryGraphics,
			GitHubURL:   githubURL + "/Flying-Over-itt",
			Stars:       7,
			Forks:       3,
		},
	}
}
