package bot

import "fmt"

// Fixed reply texts. Failures never leak upstream detail into the chat;
// these strings are the whole user-visible error surface.
const (
	replyPing              = "This server is better than HWS! 🤯"
	replyUnauthorized      = "Unauthorized user."
	replyMissingLocation   = "Please enter a location."
	replyNoDefaultLocation = "No default location to delete."
	replyWeatherFailed     = "Unable to get current weather for your default location."
	replyStoreFailed       = "Unable to access your saved location right now. Please try again later."
)

func startReply(botUsername string) string {
	return fmt.Sprintf("Use /help%s for information on how to use this bot.", botUsername)
}

func helpReply(botUsername string) string {
	return fmt.Sprintf(`I can give you the weather information given a location. You can control me by sending these commands:

/ping%[1]s - check if I am alive
/w%[1]s - get weather for your default location set
/wo%[1]s {location} - get weather for a different location

<strong>Default Location</strong>
/setlocation%[1]s {location} - set a default location
/deletelocation%[1]s - delete your default location`, botUsername)
}

func setLocationPrompt(botUsername string) string {
	return fmt.Sprintf("Please set a default location using /setlocation%s.", botUsername)
}

func addressNotFoundReply(input string) string {
	return fmt.Sprintf("Unable to find a valid address for %s", input)
}

func locationSetReply(name string) string {
	return fmt.Sprintf("Default location %s set.", name)
}

func locationDeletedReply(name string) string {
	return fmt.Sprintf("Default location %s deleted.", name)
}
