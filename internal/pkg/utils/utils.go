package utils

import (
	"net/url"

	"bitbucket.org/airenas/meetsum/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

//GetURLFromConfig retrieves URL from config and checks it
func GetURLFromConfig(name string) (string, error) {
	return validateConfigURL(cmdapp.Config.GetString(name), name)
}

func validateConfigURL(urlStr, settingName string) (string, error) {
	if urlStr == "" {
		return "", errors.New("No " + settingName + " setting provided")
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return "", errors.Wrap(err, "Can't parse url "+urlStr)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("Wrong url %s, no scheme or host", urlStr)
	}
	return u.String(), nil
}

//HostName returns host name without port from URL
func HostName(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", errors.Wrap(err, "Can't parse url "+link)
	}
	if u.Hostname() == "" {
		return "", errors.Errorf("No host in url %s", link)
	}
	return u.Hostname(), nil
}

//URLToLog removes pass from URL
func URLToLog(link string) string {
	u, err := url.Parse(link)
	if err == nil {
		if u.User != nil {
			u.User = url.UserPassword(u.User.Username(), "xxxx")
		}
		return u.String()
	}
	return link
}
