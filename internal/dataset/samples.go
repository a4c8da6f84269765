package dataset

// Embedded fallback samples, one per dataset, in the same shape as the
// backing files. They keep the engine runnable when the preprocessed
// corpora are not on disk; real runs should point the registry at the full
// data directory.
var embeddedSamples = map[string]string{
	"stack_overflow": `{
  "questions": [
    "ResponseId: Randomized respondent ID number",
    "MainBranch: Which of the following options best describes you today?",
    "Employment: Which of the following best describes your current employment status?",
    "EdLevel: Which of the following best describes the highest level of formal education that you have completed?",
    "YearsCode: Including any education, how many years have you been coding in total?",
    "DevType: Which of the following describes your current job?",
    "Gender: Which of the following describe you, if any?"
  ],
  "responses": [
    {"answers": {"ResponseId": "1", "MainBranch": "I am a developer by profession", "Employment": "Employed, full-time", "EdLevel": "Bachelor's degree", "YearsCode": "8", "DevType": "Developer, back-end", "Gender": "Man"}},
    {"answers": {"ResponseId": "2", "MainBranch": "I am a developer by profession", "Employment": "Employed, full-time", "EdLevel": "Master's degree", "YearsCode": "12", "DevType": "Developer, full-stack", "Gender": "Woman"}},
    {"answers": {"ResponseId": "3", "MainBranch": "I am learning to code", "Employment": "Student, full-time", "EdLevel": "Secondary school", "YearsCode": "2", "Gender": "Man"}},
    {"answers": {"ResponseId": "4", "MainBranch": "I code primarily as a hobby", "Employment": "Employed, part-time", "EdLevel": "Bachelor's degree", "YearsCode": "5", "DevType": "Data scientist", "Gender": "Woman"}},
    {"answers": {"ResponseId": "5", "MainBranch": "I am a developer by profession", "Employment": "Independent contractor, freelancer, or self-employed", "EdLevel": "Master's degree", "YearsCode": "15", "DevType": "Developer, front-end", "Gender": "Man"}},
    {"answers": {"ResponseId": "6", "MainBranch": "I am a developer by profession", "Employment": "Employed, full-time", "EdLevel": "Bachelor's degree", "YearsCode": "6", "DevType": "Developer, mobile", "Gender": "Woman"}}
  ]
}`,
	"sus_uta7": `{
  "datasets": {
    "questions": {
      "group": "Participant experience group",
      "Ease of use": "I thought the system was easy to use",
      "Confidence": "I felt very confident using the system",
      "Complexity": "I found the system unnecessarily complex",
      "Learnability": "I would imagine that most people would learn to use this system very quickly"
    },
    "responses": [
      {"answers": {"group": "senior", "Ease of use": 5, "Confidence": 4, "Complexity": 2, "Learnability": 4}},
      {"answers": {"group": "senior", "Ease of use": 3, "Confidence": 3, "Complexity": 3, "Learnability": 3}},
      {"answers": {"group": "junior", "Ease of use": 5, "Confidence": 5, "Complexity": 1, "Learnability": 5}},
      {"answers": {"group": "middle", "Ease of use": 4, "Confidence": 4, "Complexity": 2, "Learnability": 4}},
      {"answers": {"group": "senior", "Ease of use": 5, "Confidence": 5, "Complexity": 1, "Learnability": 5}},
      {"answers": {"group": "junior", "Ease of use": 2, "Confidence": 2, "Complexity": 4, "Learnability": 3}}
    ]
  }
}`,
	"mental_health": `{
  "questions": {
    "Age": "What is your age?",
    "Gender": "What is your gender?",
    "Course": "What course are you enrolled in?",
    "Anxiety": "Do you experience anxiety?",
    "Depression": "Do you experience depression?",
    "Treatment": "Did you seek any specialist treatment?"
  },
  "responses": [
    {"Age": 19, "Gender": "Female", "Course": "Engineering", "Anxiety": "Yes", "Depression": "No", "Treatment": "No"},
    {"Age": 21, "Gender": "Male", "Course": "Business", "Anxiety": "No", "Depression": "No", "Treatment": "No"},
    {"Age": 20, "Gender": "Female", "Course": "Psychology", "Anxiety": "Yes", "Depression": "Yes", "Treatment": "Yes"},
    {"Age": 23, "Gender": "Male", "Course": "Computer Science", "Anxiety": "No", "Depression": "Yes", "Treatment": "No"}
  ]
}`,
}
