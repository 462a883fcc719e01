package recommend

// basePrompt is the single point of truth for the shape the model must
// return. Parsing and validation live downstream; if the template changes,
// ValidateGoal is what actually holds the line.
const basePrompt = `{
    "title": "Learn to play the guitar",
    "deadline": "2025-06-01",
    "priority": "medium",
    "xp": 100,
    "progress": 0,
    "milestones": [
        {"title": "Buy a beginner acoustic guitar", "subtasks": ["Research guitar brands in your budget", "Visit a local music store and try a few"]},
        {"title": "Learn basic open chords", "subtasks": ["Practice G, C and D chords daily", "Switch between chords without looking"]},
        {"title": "Train strumming patterns", "subtasks": ["Master the down-down-up-up-down pattern", "Play along with a metronome at 60 bpm"]},
        {"title": "Play your first full song", "subtasks": ["Pick a three-chord song you like", "Play it end to end without stopping"]},
        {"title": "Learn to read tablature", "subtasks": ["Study how tabs map to strings and frets", "Transcribe one riff by ear into tabs"]},
        {"title": "Perform for someone", "subtasks": ["Rehearse your song five times in a row", "Play it for a friend or family member"]}
    ]
}

I want the output you generate to be in the above structure format. Strictly follow the template and don't change the structure. Provide only 6 milestones. Do not mention the output format like JSON or Python. Generate 2 subtopics for each milestone and place them in their list.

`

// ComposePrompt merges the fixed instruction block with the caller-supplied
// text. The user prompt is opaque UTF-8; nothing is validated or rejected
// here, all schema enforcement happens downstream.
func ComposePrompt(userPrompt string) string {
	return basePrompt + userPrompt
}
