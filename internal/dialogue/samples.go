package dialogue

import "github.com/ppiankov/medgarble/internal/model"

// Samples returns the built-in medical conversation dataset used for demos
// and testing. Callers get a fresh copy each time; mutating it never
// affects later calls.
func Samples() []model.Conversation {
	out := make([]model.Conversation, len(samples))
	for i, c := range samples {
		out[i] = c.Clone()
	}
	return out
}

// Titles returns the titles of all built-in conversations, in order
func Titles() []string {
	titles := make([]string, len(samples))
	for i, c := range samples {
		titles[i] = c.Title
	}
	return titles
}

// ByTitle returns the built-in conversation with the given title
func ByTitle(title string) (model.Conversation, bool) {
	for _, c := range samples {
		if c.Title == title {
			return c.Clone(), true
		}
	}
	return model.Conversation{}, false
}

var samples = []model.Conversation{
	{
		Title: "Initial Consultation - Hypertension",
		Turns: []model.Turn{
			{Speaker: "Doctor", Text: "Good morning. I see from your chart that you have hypertension. How long have you had this condition?"},
			{Speaker: "Patient", Text: "Good morning, doctor. I was diagnosed about five years ago."},
			{Speaker: "Doctor", Text: "Are you currently taking any medication for it?"},
			{Speaker: "Patient", Text: "Yes, I take fifteen milligrams of lisinopril every morning before breakfast."},
			{Speaker: "Doctor", Text: "Good. Have you noticed any symptoms like dizziness or chronic headaches?"},
			{Speaker: "Patient", Text: "Sometimes I get mild headaches in the evening, but not always."},
			{Speaker: "Doctor", Text: "I see. We should continue monitoring your blood pressure. Make sure not to stop taking your medication without consulting me first."},
		},
	},
	{
		Title: "Pharmacy - Antibiotic Instructions",
		Turns: []model.Turn{
			{Speaker: "Pharmacist", Text: "Hello, I have your prescription ready. This is an antibiotic for your infection."},
			{Speaker: "Patient", Text: "Thank you. How should I take it?"},
			{Speaker: "Pharmacist", Text: "Take one tablet twice daily, in the morning and evening, after meals. Continue for fourteen days without stopping."},
			{Speaker: "Patient", Text: "What if I forget a dose?"},
			{Speaker: "Pharmacist", Text: "If you forget, take it as soon as you remember, but do not take double doses. And avoid alcohol while taking this medication."},
			{Speaker: "Patient", Text: "Do I have any allergy to this medication?"},
			{Speaker: "Pharmacist", Text: "According to your records, you have no known allergies. But if you develop any symptoms like rash or breathlessness, stop immediately and contact your doctor."},
		},
	},
	{
		Title: "Emergency Room - Chest Pain",
		Turns: []model.Turn{
			{Speaker: "Nurse", Text: "What brings you to the emergency room today?"},
			{Speaker: "Patient", Text: "I have been having severe chest pain for the past thirty minutes."},
			{Speaker: "Nurse", Text: "Is the pain acute or chronic? Does it feel like pressure or sharp pain?"},
			{Speaker: "Patient", Text: "It is acute, and it feels like pressure. It started after I was exercising."},
			{Speaker: "Nurse", Text: "Do you have any history of heart disease or hypertension?"},
			{Speaker: "Patient", Text: "Yes, I have chronic hypertension. I take medication for it daily."},
			{Speaker: "Nurse", Text: "Okay, the doctor will see you immediately. Please try to remain calm and breathe slowly."},
		},
	},
	{
		Title: "Follow-up Visit - Diabetes Management",
		Turns: []model.Turn{
			{Speaker: "Doctor", Text: "Welcome back. How has your diabetes management been going?"},
			{Speaker: "Patient", Text: "I have been checking my blood sugar levels every morning before breakfast as you instructed."},
			{Speaker: "Doctor", Text: "Excellent. What are your typical readings?"},
			{Speaker: "Patient", Text: "Usually between one hundred and one hundred twenty, sometimes slightly higher after meals."},
			{Speaker: "Doctor", Text: "Those are good numbers. Are you taking your insulin as prescribed? Fifteen units before meals?"},
			{Speaker: "Patient", Text: "Yes, I inject fifteen units before breakfast and before dinner."},
			{Speaker: "Doctor", Text: "Good. Continue with your current regimen. We may need to increase the dose if your readings go above one hundred fifty consistently."},
		},
	},
	{
		Title: "Allergy Discussion",
		Turns: []model.Turn{
			{Speaker: "Doctor", Text: "I see you have listed some allergies on your intake form. Can you tell me about them?"},
			{Speaker: "Patient", Text: "Yes, I am allergic to penicillin. I get a severe rash when I take it."},
			{Speaker: "Doctor", Text: "That is important to know. Have you ever had any allergic reaction to other antibiotics?"},
			{Speaker: "Patient", Text: "No, I have not had problems with other medications."},
			{Speaker: "Doctor", Text: "Good. I will make sure to avoid prescribing penicillin or related antibiotics. If you ever need antibiotics, we will use alternatives that are safe for you."},
			{Speaker: "Patient", Text: "Thank you, doctor. Should I wear a medical alert bracelet?"},
			{Speaker: "Doctor", Text: "Yes, that would be a good idea, especially since the allergy is severe."},
		},
	},
	{
		Title: "Pain Management - Post-Surgery",
		Turns: []model.Turn{
			{Speaker: "Nurse", Text: "How is your pain level today? On a scale from one to ten, with ten being the worst."},
			{Speaker: "Patient", Text: "It is about a seven right now. The pain is worse in the morning."},
			{Speaker: "Nurse", Text: "I see. Are you taking the pain medication as prescribed? Two tablets every six hours?"},
			{Speaker: "Patient", Text: "Yes, but sometimes I wait longer because I do not want to take too much medication."},
			{Speaker: "Nurse", Text: "I understand your concern, but it is better to take the medication regularly to prevent the pain from becoming severe. Do not wait until the pain is unbearable."},
			{Speaker: "Patient", Text: "Okay, I will try to take it more regularly. Should I continue taking it after I go home?"},
			{Speaker: "Nurse", Text: "Yes, continue for at least one week after discharge, then gradually decrease the dose as the pain improves."},
		},
	},
}
