package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// PromptDriver abstracts the terminal interaction so tests can script a fill
// session without a TTY.
type PromptDriver interface {
	Input(message, placeholder string, required bool) (string, error)
	Multiline(message string, required bool) (string, error)
	Select(message string, options []string, required bool) (string, error)
	Confirm(message string) (bool, error)
	Note(message string)
}

type surveyDriver struct{}

func newSurveyDriver() PromptDriver {
	return surveyDriver{}
}

func (surveyDriver) Input(message, placeholder string, required bool) (string, error) {
	prompt := &survey.Input{Message: message, Help: placeholder}
	var answer string
	err := survey.AskOne(prompt, &answer, askOptions(required)...)
	return answer, err
}

func (surveyDriver) Multiline(message string, required bool) (string, error) {
	prompt := &survey.Multiline{Message: message}
	var answer string
	err := survey.AskOne(prompt, &answer, askOptions(required)...)
	return answer, err
}

func (surveyDriver) Select(message string, options []string, required bool) (string, error) {
	prompt := &survey.Select{Message: message, Options: options}
	var answer string
	err := survey.AskOne(prompt, &answer, askOptions(required)...)
	return answer, err
}

func (surveyDriver) Confirm(message string) (bool, error) {
	prompt := &survey.Confirm{Message: message}
	var answer bool
	err := survey.AskOne(prompt, &answer)
	return answer, err
}

func (surveyDriver) Note(message string) {
	fmt.Fprintln(os.Stderr, message)
}

func askOptions(required bool) []survey.AskOpt {
	if !required {
		return nil
	}
	return []survey.AskOpt{survey.WithValidator(survey.Required)}
}
