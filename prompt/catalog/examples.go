package catalog

// ExamplePrompt is a ready-made idea paired with its best-fitting persona.
type ExamplePrompt struct {
	Text    string
	Persona string
}

// ExamplePrompts backs the example marquee and idea-suggestion features.
var ExamplePrompts = []ExamplePrompt{
	{Text: "Create a modern, responsive UI component for a user profile card using React and Tailwind CSS. It should include an avatar, name, username, a short bio, and social media links.", Persona: "frontend-developer"},
	{Text: "Design the complete specification for a REST API endpoint to fetch a user's profile data. Include details on the HTTP method, URL structure, and an example of the JSON response.", Persona: "backend-developer"},
	{Text: "Outline the complete user journey for a new \"Task Dependencies\" feature in a project management application, from creation to visualization on a timeline.", Persona: "ui-ux-designer"},
	{Text: "Write a Python script using pandas and matplotlib to clean a customer dataset and visualize the distribution of customer ages and purchase frequency.", Persona: "data-scientist"},
	{Text: "Generate three distinct, catchy headlines and a short paragraph of ad copy for a new eco-friendly subscription box service targeting millennials.", Persona: "marketing-guru"},
	{Text: "Write a short and punchy re-engagement email for customers who haven't purchased in 90 days, offering a personalized 15% discount on their next order.", Persona: "marketing-guru"},
	{Text: "Write the compelling opening scene of a sci-fi mystery novel set on a desolate Martian colony, where the lead detective discovers a cryptic message.", Persona: "creative-storyteller"},
	{Text: "Brainstorm 5 viral video ideas for a new sustainable fashion brand on TikTok, focusing on behind-the-scenes content and styling tips.", Persona: "content-creator"},
	{Text: "Draft a clear, step-by-step guide for new hires on setting up their local development environment, including software installation and configuration.", Persona: "technical-writer"},
	{Text: "Formulate a specific research question and testable hypothesis for a study on the effects of a four-day work week on employee productivity and well-being.", Persona: "academic-researcher"},
	{Text: "Review a sample Non-Disclosure Agreement (NDA) and identify clauses that are overly broad or potentially unfavorable to an independent contractor.", Persona: "legal-advisor"},
}
