// Package calendar renders canonical events as Google Calendar template
// deep links, with timed and all-day date ranges and native Google Meet
// conference attachment.
package calendar
