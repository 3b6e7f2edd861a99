package session

import (
	"fmt"

	"github.com/CandorLabs/InterviewKit/interview"
)

// interviewerInstructions is the asker role's base preamble. The candidate's
// profile is merged in exactly once, at first asker activation.
const interviewerInstructions = `Your role is to conduct an interview using a predefined set of questions and additional context from the candidate's profile and previous answers.

You are called as part of an interview flow managed by a system. The system decides whether you should ask a predefined question, a follow-up question, or a question based on the candidate's profile. Your only job is to follow the instruction you are given for each turn. Always:
- Ask the exact predefined question if one is given. Do not modify it in any way.
- Generate a follow-up question only if explicitly told to do so, and ensure it directly relates to the candidate's previous answer.
- Generate a profile-based question only when instructed.

Do not generate new questions unless specifically instructed.
Output format: return only the question string. No symbols, no commentary, no formatting, no JSON. Just the question.`

// profileSection is appended to the interviewer preamble when a candidate
// profile is available.
const profileSection = "\n\nCANDIDATE PROFILE INFORMATION:\n%s"

// normalizerInstructions is the normalizer role's preamble. It never asks
// questions; it only cleans raw spoken input.
const normalizerInstructions = `Your role is to refine the speech input exactly as if the user is speaking.
- Clean the input by removing repetitions, filler words, and speech disfluencies while keeping the original intent and tone.
- Do not add new information, explanations, or rephrase into formal language.
- Maintain the structure and flow of natural spoken language.
Output format: a refined version of the user's input in the first person, as if the user just spoke it fluently.`

// askerInstructions builds the asker preamble, merging the profile text once.
func askerInstructions(profileText string) string {
	if profileText == "" {
		return interviewerInstructions
	}
	return interviewerInstructions + fmt.Sprintf(profileSection, profileText)
}

// directiveFor maps a sequenced action to the asker's per-turn instruction.
func directiveFor(action interview.Action) string {
	switch action.Kind {
	case interview.ActionAskPredefined:
		return fmt.Sprintf("Do not use any context and only ask this exact question to the candidate: %s", action.Question.Text)
	case interview.ActionAskFollowUp:
		return "Ask a follow-up question based on the candidate's previous answer to get more details or clarification."
	case interview.ActionAskProfile:
		return "Based on the candidate's profile, ask a relevant and specific question about their experience, skills, education, or projects. Vary the focus each time to cover different aspects and avoid repetition."
	default:
		return "The interview is complete. Provide a summary of the candidate's performance and final scores."
	}
}
