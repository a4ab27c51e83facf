package main

import (
	"log"

	"github.com/nlopes/slack"
	"github.com/pkg/errors"
)

var botID string

// runSlack serves the same command set over a Slack RTM connection. Every
// channel message is run as a command; the bot ignores its own messages.
func runSlack(reg *registry, db store) error {
	if accessToken == "" {
		return errors.New("ACCESS_TOKEN is required for slack mode")
	}

	api := slack.New(accessToken)
	rtm := api.NewRTM()
	go rtm.ManageConnection()

	auth, err := api.AuthTest()
	if err != nil {
		return errors.Wrap(err, "unable to authenticate with slack")
	}
	botID = auth.UserID

	for e := range rtm.IncomingEvents {
		switch evt := e.Data.(type) {
		case *slack.MessageEvent:
			Debugf("%#v", evt)
			if evt.BotID != "" {
				continue
			}

			reply, mutated := runCommand(reg, evt.Msg.Text)
			if mutated {
				if err := db.save(reg.snapshot()); err != nil {
					log.Printf("%+v", err)
				}
			}
			if reply != "" {
				if err := sendMessage(rtm, evt.Channel, reply); err != nil {
					log.Printf("%+v", err)
				}
			}
		default:
			Debugf("%#v", evt)
		}
	}

	return nil
}

func sendMessage(rtm *slack.RTM, channel, text string) error {
	var err error
	for i := 0; i < 5; i++ {
		params := slack.NewPostMessageParameters()
		params.EscapeText = false
		params.AsUser = true
		params.Username = botID

		_, _, err = rtm.PostMessage(channel, text, params)
		if err == nil {
			break
		}
	}

	return errors.Wrap(err, "unable to send message")
}
