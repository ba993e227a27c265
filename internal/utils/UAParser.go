package utils

import (
	"fmt"

	"github.com/medama-io/go-useragent"
)

var uaParser = useragent.NewParser()

// DescribeUserAgent condenses a User-Agent header for access log lines
func DescribeUserAgent(inputUA string) string {
	if inputUA == "" {
		return "-"
	}

	ua := uaParser.Parse(inputUA)
	if ua.IsBot() {
		return fmt.Sprintf("Bot:%v", ua.Browser())
	}

	return fmt.Sprintf("Browser:%v,BrowserVersion:%v,OS:%v", ua.Browser(), ua.BrowserVersion(), ua.OS())
}
