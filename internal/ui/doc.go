// Package ui implements the interactive terminal client using bubbletea's Elm architecture.
//
// The TUI is a small router over five pages:
//  1. Courses (/) : the course catalog
//  2. Videos (/videos/<code>) : a course's videos with a title/description search
//  3. Watch (/watch/<id>) : video details, open in browser, jump to the uploader
//  4. Profile (/profile/<id>) : a user's uploads; the owner can edit their name and username
//  5. Upload (/upload[/<code>]) : the upload form
//
// Every page except Profile shows the course [SearchBar] at the top. It wraps a
// [typeahead.Typeahead] and is driven by arrow keys, enter and the mouse. The [Model]
// implements [typeahead.Navigator], so a clicked course opens its videos page.
//
// Services are reached through the narrow [VideoSource], [ProfileSource] and
// [SessionSource] interfaces and run inside [tea.Cmd]s; results come back as [Msg] values.
package ui
