package protocol

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Marshal serializes an outbound action. It is total over the action
// union: a payload that fails here is a programmer error, so callers
// are expected to treat a returned error as fatal, not retryable.
func Marshal(payload Payload) ([]byte, error) {
	if err := checkPayload(payload); err != nil {
		return nil, err
	}
	data, err := json.Marshal(payload)
	return data, errors.Wrap(err, "failed to marshal action")
}

func checkPayload(payload Payload) error {
	switch p := payload.(type) {
	case *AddPlayerAction:
		return checkType(p.Type, ActionTypeAddPlayer)
	case *StartGameAction:
		return checkType(p.Type, ActionTypeStartGame)
	case *RemovePlayerAction:
		return checkType(p.Type, ActionTypeRemovePlayer)
	case *ChangeHostAction:
		return checkType(p.Type, ActionTypeChangeHost)
	case *PreGameAction:
		if err := checkType(p.Type, ActionTypePreGame); err != nil {
			return err
		}
		return checkType(p.Inner.Type, ActionTypeChangeTeam)
	case *InGameAction:
		if err := checkType(p.Type, ActionTypeInGame); err != nil {
			return err
		}
		if p.InGameMove == nil {
			return errors.New("in-game action carries no move")
		}
		return nil
	}
	return errors.Errorf("unknown action payload %T", payload)
}

func checkType(got ActionType, want ActionType) error {
	if got != want {
		return errors.Errorf("action type %q does not match payload (want %q)", got, want)
	}
	return nil
}

// UnmarshalAction decodes an outbound action back into its typed
// variant. Used by tests and local loopback, the server does its own
// parsing.
func UnmarshalAction(payload []byte) (Payload, error) {
	var head Action
	if err := json.Unmarshal(payload, &head); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal action")
	}

	switch head.Type {
	case ActionTypeAddPlayer:
		action := &AddPlayerAction{}
		err := json.Unmarshal(payload, action)
		return action, errors.Wrap(err, "failed to unmarshal add_player action")
	case ActionTypeStartGame:
		action := &StartGameAction{}
		err := json.Unmarshal(payload, action)
		return action, errors.Wrap(err, "failed to unmarshal start_game action")
	case ActionTypeRemovePlayer:
		action := &RemovePlayerAction{}
		err := json.Unmarshal(payload, action)
		return action, errors.Wrap(err, "failed to unmarshal remove_player action")
	case ActionTypeChangeHost:
		action := &ChangeHostAction{}
		err := json.Unmarshal(payload, action)
		return action, errors.Wrap(err, "failed to unmarshal change_host action")
	case ActionTypePreGame:
		action := &PreGameAction{}
		err := json.Unmarshal(payload, action)
		return action, errors.Wrap(err, "failed to unmarshal pre_game_action")
	case ActionTypeInGame:
		action := &InGameAction{}
		err := json.Unmarshal(payload, action)
		return action, errors.Wrap(err, "failed to unmarshal in_game_action")
	}

	return nil, errors.Errorf("unknown action type %q", head.Type)
}
