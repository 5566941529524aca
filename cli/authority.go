package cli

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"pfeifer.dev/drived/cereal"
	"pfeifer.dev/drived/utils"
)

func parseAuthority(arg string) (enabled bool, err error) {
	switch strings.ToLower(arg) {
	case "on", "enable", "enabled", "true", "1":
		return true, nil
	case "off", "disable", "disabled", "false", "0":
		return false, nil
	}
	return false, errors.Errorf("unknown authority %q, want on or off", arg)
}

func promptAuthority() (string, error) {
	prompt := promptui.Select{
		Label: "Drive-by-wire authority",
		Items: []string{"on", "off"},
	}
	_, result, err := prompt.Run()
	if err != nil {
		return "", errors.Wrap(err, "prompt failed")
	}
	return result, nil
}

func authority(arg string) error {
	if arg == "" {
		var err error
		arg, err = promptAuthority()
		if err != nil {
			return err
		}
	}
	enabled, err := parseAuthority(arg)
	if err != nil {
		return err
	}
	return publishAuthority(enabled)
}

func publishAuthority(enabled bool) error {
	pub, err := cereal.NewStatusPublisher(cereal.DBW_ENABLED)
	if err != nil {
		return err
	}
	defer func() { utils.Logwe(pub.Close()) }()

	if err := pub.PublishAuthority(enabled); err != nil {
		return errors.Wrap(err, "could not publish authority")
	}
	fmt.Printf("dbw authority %s\n", onOff(enabled))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
