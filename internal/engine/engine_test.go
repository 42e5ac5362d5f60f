package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/config"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
)

const vulnerable = `contract Bank {
    mapping(address => uint256) public balances;

    function withdraw() public {
        (bool ok, ) = msg.sender.call{value: balances[msg.sender]}("");
        require(ok, "send failed");
        balances[msg.sender] = 0;
    }
}`

const wallet = `contract Wallet {
    address public owner;

    function pay(address to, uint256 amount) public {
        require(tx.origin == owner, "not owner");
        payable(to).transfer(amount);
    }
}`

func TestScanDeterministicAcrossRuns(t *testing.T) {
	e := New(config.Default(), nil)
	sources := []Source{
		{Path: "a/bank.sol", Content: vulnerable},
		{Path: "b/wallet.sol", Content: wallet},
	}

	a := e.Scan(context.Background(), sources)
	b := e.Scan(context.Background(), sources)
	require.NotEmpty(t, a.Findings)
	assert.Equal(t, a.Findings, b.Findings, "same input must produce an identical finding list")
	assert.Equal(t, a.Summary, b.Summary)
}

func TestScanOrdersAcrossFiles(t *testing.T) {
	e := New(config.Default(), nil)
	rm := e.Scan(context.Background(), []Source{
		{Path: "a/bank.sol", Content: vulnerable},
		{Path: "b/wallet.sol", Content: wallet},
	})

	for i := 1; i < len(rm.Findings); i++ {
		prev, cur := rm.Findings[i-1], rm.Findings[i]
		if prev.Severity == cur.Severity {
			assert.LessOrEqual(t, prev.ContractIndex, cur.ContractIndex)
		} else {
			assert.Greater(t, model.SeverityRank(prev.Severity), model.SeverityRank(cur.Severity))
		}
	}
}

func TestScanReportsSameContractPerFile(t *testing.T) {
	e := New(config.Default(), nil)
	rm := e.Scan(context.Background(), []Source{
		{Path: "a/bank.sol", Content: vulnerable},
		{Path: "b/bank.sol", Content: vulnerable},
	})

	var reentrancyFiles []string
	for _, f := range rm.Findings {
		if f.RuleID == "SOL-REENTRANCY" {
			reentrancyFiles = append(reentrancyFiles, f.File)
		}
	}
	assert.ElementsMatch(t, []string{"a/bank.sol", "b/bank.sol"}, reentrancyFiles,
		"a vulnerable contract duplicated across files must be reported once per file")
}

func TestScanCarriesParseWarnings(t *testing.T) {
	e := New(config.Default(), nil)
	rm := e.Scan(context.Background(), []Source{
		{Path: "bad.sol", Content: "pragma solidity ^0.8.0;\nuint256 constant X = 1;"},
	})
	require.Len(t, rm.Findings, 1)
	assert.Equal(t, model.CategoryParseWarning, rm.Findings[0].Category)
}

func TestScanCancelledContextReportsPartial(t *testing.T) {
	e := New(config.Default(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rm := e.Scan(ctx, []Source{{Path: "a.sol", Content: vulnerable}})
	assert.Empty(t, rm.Findings)
}

func TestSeverityThresholdFilters(t *testing.T) {
	cfg := config.Default()
	cfg.SeverityThreshold = "high"
	e := New(cfg, nil)

	rm := e.Scan(context.Background(), []Source{{Path: "bank.sol", Content: vulnerable}})
	require.NotEmpty(t, rm.Findings)
	for _, f := range rm.Findings {
		assert.True(t, model.SeverityGTE(f.Severity, model.SeverityHigh), "rule %s leaked through threshold", f.RuleID)
	}
}

func TestRuleAllowlist(t *testing.T) {
	cfg := config.Default()
	cfg.Rules = []string{"SOL-REENTRANCY"}
	e := New(cfg, nil)

	rm := e.Scan(context.Background(), []Source{{Path: "bank.sol", Content: vulnerable}})
	require.Len(t, rm.Findings, 1)
	assert.Equal(t, "SOL-REENTRANCY", rm.Findings[0].RuleID)
}

func TestIgnoreRuleByPath(t *testing.T) {
	cfg := config.Default()
	cfg.Ignore = []config.IgnoreRule{{Rule: "SOL-TX-ORIGIN", Path: "vendor/"}}
	e := New(cfg, nil)

	rm := e.Scan(context.Background(), []Source{
		{Path: "vendor/wallet.sol", Content: wallet},
		{Path: "src/wallet.sol", Content: wallet},
	})
	var txOrigin []string
	for _, f := range rm.Findings {
		if f.RuleID == "SOL-TX-ORIGIN" {
			txOrigin = append(txOrigin, f.File)
		}
	}
	assert.Equal(t, []string{"src/wallet.sol"}, txOrigin)
}

func TestInlineSuppression(t *testing.T) {
	suppressed := `contract Wallet {
    address public owner;

    function pay(address to, uint256 amount) public {
        // secudity:ignore SOL-TX-ORIGIN reason="legacy check"
        require(tx.origin == owner, "not owner");
        payable(to).transfer(amount);
    }
}`
	e := New(config.Default(), nil)
	rm := e.Scan(context.Background(), []Source{{Path: "wallet.sol", Content: suppressed}})
	for _, f := range rm.Findings {
		assert.NotEqual(t, "SOL-TX-ORIGIN", f.RuleID)
	}
}

func TestRunAllDetectorsWithoutSources(t *testing.T) {
	e := New(config.Default(), nil)
	units, warnings := ExtractContracts(vulnerable, "bank.sol")
	require.Len(t, units, 1)

	rm := e.RunAllDetectors(units, warnings)
	require.NotEmpty(t, rm.Findings)
	assert.Equal(t, "SOL-REENTRANCY", rm.Findings[0].RuleID)
	assert.Equal(t, model.SeverityCritical, rm.Findings[0].Severity)
}
