package service

import (
	"Wellspring/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyOperation(t *testing.T) {
	testCases := []struct {
		name     string
		action   actionKind
		referred bool
		want     model.OperationKind
	}{
		{name: "本人浏览", action: actionView, referred: false, want: model.OpViewSelf},
		{name: "被分享浏览", action: actionView, referred: true, want: model.OpViewReferred},
		{name: "本人转发", action: actionTransmit, referred: false, want: model.OpTransmitSelf},
		{name: "被分享转发", action: actionTransmit, referred: true, want: model.OpTransmitReferred},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyOperation(tc.action, tc.referred))
		})
	}
}

func TestReferredAndSelfKinds(t *testing.T) {
	assert.Equal(t, model.OpViewReferred, referredKindOf(actionView))
	assert.Equal(t, model.OpTransmitReferred, referredKindOf(actionTransmit))
	assert.Equal(t, model.OpViewSelf, selfKindOf(actionView))
	assert.Equal(t, model.OpTransmitSelf, selfKindOf(actionTransmit))
}
