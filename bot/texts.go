package bot

import "fmt"

const (
	welcomeText  = "Welcome to AI Image Bot!\nUse /styles to select an image style and start generating images!"
	chooseText   = "Choose an image style:"
	guidanceText = "Please use /styles to choose a style first."
	waitText     = "Generating images... please wait."
)

func chosenText(key string) string {
	return fmt.Sprintf("You chose *%s* style. Now send your prompt.", key)
}

func sizeCaption(size string) string {
	return "Size: " + size
}

func errorText(err error) string {
	return fmt.Sprintf("Error: %v", err)
}
