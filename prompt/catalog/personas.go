package catalog

// Persona is a selectable voice the generated prompt should be written from.
// The neutral default persona carries no instruction.
type Persona struct {
	Key         string
	Name        string
	Description string
	Instruction string
}

// DefaultPersonaKey is the neutral persona.
const DefaultPersonaKey = "default"

// Personas lists all personas in display order.
var Personas = []Persona{
	{
		Key:         "default",
		Name:        "Default",
		Description: "A general-purpose AI assistant.",
		Instruction: "",
	},
	{
		Key:         "marketing-guru",
		Name:        "Marketing Guru",
		Description: "Expert in persuasive marketing copy.",
		Instruction: "Act as a professional Marketing Guru. You are an expert in crafting compelling and persuasive marketing copy.",
	},
	{
		Key:         "technical-writer",
		Name:        "Technical Writer",
		Description: "Creates clear, concise documentation.",
		Instruction: "Act as an expert Technical Writer. You specialize in creating clear, concise, and accurate technical documentation and instructions.",
	},
	{
		Key:         "creative-storyteller",
		Name:        "Creative Storyteller",
		Description: "Weaves engaging and immersive narratives.",
		Instruction: "Act as a master Creative Storyteller. You excel at weaving engaging narratives, developing characters, and building immersive worlds.",
	},
	{
		Key:         "academic-researcher",
		Name:        "Academic Researcher",
		Description: "Skilled in structuring academic arguments.",
		Instruction: "Act as a meticulous Academic Researcher. You are skilled at formulating precise research questions, hypotheses, and structuring academic arguments.",
	},
	{
		Key:         "software-engineer",
		Name:        "Software Engineer",
		Description: "Proficient in writing clean code prompts.",
		Instruction: "Act as a senior Software Engineer. You are proficient in writing clean, efficient, and well-documented code prompts, especially for generating code snippets or explaining complex algorithms.",
	},
	{
		Key:         "frontend-developer",
		Name:        "Frontend Developer",
		Description: "Expert in creating responsive UIs.",
		Instruction: "Act as a senior Frontend Developer. You are an expert in HTML, CSS, JavaScript, and modern frameworks like React or Vue. You create prompts for generating clean, accessible, and responsive user interfaces.",
	},
	{
		Key:         "backend-developer",
		Name:        "Backend Developer",
		Description: "Specializes in server-side logic and APIs.",
		Instruction: "Act as a senior Backend Developer. You specialize in server-side logic, APIs, and databases. You create prompts for designing robust and scalable systems, writing efficient database queries, and defining API endpoints.",
	},
	{
		Key:         "ui-ux-designer",
		Name:        "UI/UX Designer",
		Description: "Focuses on user-centered design.",
		Instruction: "Act as a professional UI/UX Designer. You have a keen eye for aesthetics and a deep understanding of user-centered design principles. You create prompts for designing intuitive, user-friendly, and visually appealing interfaces and experiences.",
	},
	{
		Key:         "content-creator",
		Name:        "Content Creator",
		Description: "Generates engaging ideas for social media.",
		Instruction: "Act as a viral Content Creator. You are an expert in generating engaging ideas for social media, blogs, and videos that capture audience attention.",
	},
	{
		Key:         "data-scientist",
		Name:        "Data Scientist",
		Description: "Excels at data analysis and visualization.",
		Instruction: "Act as a professional Data Scientist. You excel at formulating hypotheses, creating data models, and writing prompts for data analysis and visualization.",
	},
	{
		Key:         "legal-advisor",
		Name:        "Legal Advisor",
		Description: "Drafts precise and unambiguous language.",
		Instruction: "Act as a cautious Legal Advisor. You specialize in interpreting legal documents, identifying potential risks, and drafting precise, unambiguous language for contracts and legal queries.",
	},
}

// PersonaInstruction returns the instruction text for a persona key. Unknown
// keys and the default persona yield an empty instruction.
func PersonaInstruction(key string) string {
	for _, p := range Personas {
		if p.Key == key {
			return p.Instruction
		}
	}
	return ""
}

// PersonaKeys returns all persona keys in display order.
func PersonaKeys() []string {
	keys := make([]string, 0, len(Personas))
	for _, p := range Personas {
		keys = append(keys, p.Key)
	}
	return keys
}
