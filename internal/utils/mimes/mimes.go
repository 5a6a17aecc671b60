package mimes

const (
	// application
	App_x_www_form_urlencoded = "application/x-www-form-urlencoded" // application/x-www-form-urlencoded
	App_json                  = "application/json"                  // application/json
	App_xml                   = "application/xml"                   // application/xml

	// text
	Text_plain = "text/plain" // text/plain
	Text_html  = "text/html"  // text/html
)
