package engine

// CategoryOther is assigned to skills no category claims
const CategoryOther = "other"

// SkillCategory is one named skill domain. Categories are ordered: the first
// category containing a skill claims it.
type SkillCategory struct {
	Name   string
	Skills map[string]struct{}
}

// SynonymSet maps spelling variants to one canonical skill name
type SynonymSet struct {
	Canonical string
	Variants  []string
}

// LevelIndicators holds the indicator phrases for one seniority level.
// Levels are ordered: when classifying a role, the first level with a hit wins.
type LevelIndicators struct {
	Level      string
	Indicators []string
}

// Tables is the immutable lookup data the engine scores against. It is
// injected at construction so tests can substitute smaller tables.
type Tables struct {
	Categories            []SkillCategory
	Synonyms              []SynonymSet
	SeniorityLevels       []LevelIndicators
	ProgressionIndicators []string
	StopWords             map[string]struct{}
}

func skillSet(skills ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

// DefaultTables returns the built-in skill taxonomy
func DefaultTables() Tables {
	return Tables{
		Categories: []SkillCategory{
			{Name: "programming_languages", Skills: skillSet(
				"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust",
				"php", "ruby", "swift", "kotlin", "scala", "r", "matlab", "perl",
			)},
			{Name: "web_technologies", Skills: skillSet(
				"html", "css", "react", "angular", "vue", "node.js", "express", "django",
				"flask", "spring", "laravel", "bootstrap", "jquery", "webpack", "sass", "less",
			)},
			{Name: "databases", Skills: skillSet(
				"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra",
				"oracle", "sql server", "sqlite", "dynamodb", "neo4j", "couchdb",
			)},
			{Name: "cloud_platforms", Skills: skillSet(
				"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean",
				"kubernetes", "docker", "terraform", "ansible", "jenkins",
			)},
			{Name: "data_science", Skills: skillSet(
				"machine learning", "deep learning", "tensorflow", "pytorch", "scikit-learn",
				"pandas", "numpy", "matplotlib", "seaborn", "jupyter", "tableau", "power bi",
			)},
			{Name: "mobile_development", Skills: skillSet(
				"android", "ios", "react native", "flutter", "xamarin", "ionic",
				"swift", "kotlin", "objective-c",
			)},
			{Name: "devops", Skills: skillSet(
				"docker", "kubernetes", "jenkins", "gitlab ci", "github actions",
				"terraform", "ansible", "chef", "puppet", "nagios", "prometheus",
			)},
			{Name: "testing", Skills: skillSet(
				"unit testing", "integration testing", "selenium", "jest", "pytest",
				"junit", "cypress", "postman", "jmeter", "cucumber",
			)},
		},
		Synonyms: []SynonymSet{
			{Canonical: "javascript", Variants: []string{"js", "ecmascript", "node.js", "nodejs"}},
			{Canonical: "python", Variants: []string{"py", "python3"}},
			{Canonical: "machine learning", Variants: []string{"ml", "artificial intelligence", "ai"}},
			{Canonical: "deep learning", Variants: []string{"dl", "neural networks", "cnn", "rnn"}},
			{Canonical: "react", Variants: []string{"reactjs", "react.js"}},
			{Canonical: "angular", Variants: []string{"angularjs", "angular.js"}},
			{Canonical: "vue", Variants: []string{"vuejs", "vue.js"}},
			{Canonical: "postgresql", Variants: []string{"postgres", "psql"}},
			{Canonical: "mongodb", Variants: []string{"mongo"}},
			{Canonical: "aws", Variants: []string{"amazon web services"}},
			{Canonical: "gcp", Variants: []string{"google cloud platform"}},
			{Canonical: "kubernetes", Variants: []string{"k8s"}},
			{Canonical: "docker", Variants: []string{"containerization"}},
			{Canonical: "ci/cd", Variants: []string{"continuous integration", "continuous deployment", "devops pipeline"}},
		},
		SeniorityLevels: []LevelIndicators{
			{Level: "senior", Indicators: []string{"senior", "lead", "principal", "architect", "manager", "director"}},
			{Level: "mid", Indicators: []string{"mid-level", "intermediate", "experienced", "3-5 years", "2-4 years"}},
			{Level: "junior", Indicators: []string{"junior", "entry-level", "graduate", "fresher", "0-2 years", "intern"}},
		},
		ProgressionIndicators: []string{"promoted", "advanced", "lead", "senior", "manager", "director"},
		StopWords: skillSet(
			"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
			"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
			"to", "was", "will", "with", "i", "me", "my", "myself", "we", "our",
			"ours", "ourselves", "you", "your", "yours", "yourself", "yourselves",
		),
	}
}
