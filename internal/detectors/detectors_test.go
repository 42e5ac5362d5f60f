package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// unit extracts a single contract from inline source for white-box rule tests.
func unit(t *testing.T, src string) *solidity.ContractUnit {
	t.Helper()
	units, warnings := solidity.Extract(src, "test.sol")
	require.Empty(t, warnings)
	require.Len(t, units, 1)
	return &units[0]
}

func TestReentrancyCallBeforeDependentWrite(t *testing.T) {
	u := unit(t, `contract Bank {
    mapping(address => uint256) public balances;

    function withdraw() public {
        (bool ok, ) = msg.sender.call{value: balances[msg.sender]}("");
        require(ok, "send failed");
        balances[msg.sender] = 0;
    }
}`)
	fs := (&reentrancy{}).Inspect(u)
	require.Len(t, fs, 1)
	assert.Equal(t, model.SeverityCritical, fs[0].Severity)
	assert.Equal(t, "withdraw", fs[0].Function)
	assert.Equal(t, 5, fs[0].Line)
	assert.Contains(t, fs[0].References, "SWC-107")
}

func TestReentrancyGuardReadBeforeCall(t *testing.T) {
	// the written variable feeds the call through a preceding require, not
	// through the call expression itself
	u := unit(t, `contract Bank {
    mapping(address => uint256) public balances;

    function withdraw(uint256 amount) public {
        require(balances[msg.sender] >= amount, "insufficient");
        (bool ok, ) = msg.sender.call{value: amount}("");
        require(ok);
        balances[msg.sender] = balances[msg.sender] - amount;
    }
}`)
	fs := (&reentrancy{}).Inspect(u)
	require.Len(t, fs, 1)
}

func TestReentrancyWriteBeforeCallNotFlagged(t *testing.T) {
	u := unit(t, `contract Bank {
    mapping(address => uint256) public balances;

    function withdraw() public {
        uint256 amount = balances[msg.sender];
        balances[msg.sender] = 0;
        (bool ok, ) = msg.sender.call{value: amount}("");
        require(ok);
    }
}`)
	assert.Empty(t, (&reentrancy{}).Inspect(u))
}

func TestReentrancyTransferNotFlagged(t *testing.T) {
	u := unit(t, `contract Bank {
    mapping(address => uint256) public balances;

    function withdraw() public {
        payable(msg.sender).transfer(balances[msg.sender]);
        balances[msg.sender] = 0;
    }
}`)
	assert.Empty(t, (&reentrancy{}).Inspect(u))
}

func TestReentrancyOneFindingPerFunction(t *testing.T) {
	u := unit(t, `contract Bank {
    mapping(address => uint256) public balances;
    mapping(address => uint256) public rewards;

    function drain() public {
        require(balances[msg.sender] > 0);
        require(rewards[msg.sender] > 0);
        (bool ok, ) = msg.sender.call{value: balances[msg.sender]}("");
        require(ok);
        balances[msg.sender] = 0;
        rewards[msg.sender] = 0;
    }
}`)
	fs := (&reentrancy{}).Inspect(u)
	require.Len(t, fs, 1)
}

func TestAccessControlUnguardedOwnerWrite(t *testing.T) {
	u := unit(t, `contract Owned {
    address public owner;

    function setOwner(address newOwner) public {
        owner = newOwner;
    }
}`)
	fs := (&missingAccessControl{}).Inspect(u)
	require.Len(t, fs, 1)
	assert.Equal(t, "setOwner", fs[0].Function)
	assert.Equal(t, model.SeverityHigh, fs[0].Severity)
}

func TestAccessControlEscalatesWhenVariableGatesFunds(t *testing.T) {
	u := unit(t, `contract Treasury {
    address public owner;

    function setOwner(address newOwner) public {
        owner = newOwner;
    }

    function sweep() public {
        require(msg.sender == owner, "not owner");
        (bool ok, ) = msg.sender.call{value: address(this).balance}("");
        require(ok);
    }
}`)
	fs := (&missingAccessControl{}).Inspect(u)
	require.Len(t, fs, 1)
	assert.Equal(t, model.SeverityCritical, fs[0].Severity)
}

func TestAccessControlDeclaredModifierGuards(t *testing.T) {
	u := unit(t, `contract Owned {
    address public owner;

    modifier onlyOwner() {
        require(msg.sender == owner, "not owner");
        _;
    }

    function setOwner(address newOwner) public onlyOwner {
        owner = newOwner;
    }
}`)
	assert.Empty(t, (&missingAccessControl{}).Inspect(u))
}

func TestAccessControlInBodyRequireGuards(t *testing.T) {
	u := unit(t, `contract Owned {
    address public owner;

    function setOwner(address newOwner) public {
        require(msg.sender == owner);
        owner = newOwner;
    }
}`)
	assert.Empty(t, (&missingAccessControl{}).Inspect(u))
}

func TestAccessControlUnknownModifierDoesNotVouch(t *testing.T) {
	// an inherited modifier cannot be resolved, so it does not count as a
	// guard; this trades a false positive for a closed inheritance model
	u := unit(t, `contract Owned {
    address public owner;

    function setOwner(address newOwner) public onlyRole {
        owner = newOwner;
    }
}`)
	fs := (&missingAccessControl{}).Inspect(u)
	require.Len(t, fs, 1)
}

func TestAccessControlViewFunctionIgnored(t *testing.T) {
	u := unit(t, `contract Owned {
    address public owner;

    function getOwner() public view returns (address) {
        return owner;
    }
}`)
	assert.Empty(t, (&missingAccessControl{}).Inspect(u))
}

func TestTxOriginInRequire(t *testing.T) {
	u := unit(t, `contract Wallet {
    address public owner;

    function pay(address to, uint256 amount) public {
        require(tx.origin == owner, "not owner");
        payable(to).transfer(amount);
    }
}`)
	fs := (&txOriginAuth{}).Inspect(u)
	require.Len(t, fs, 1)
	assert.Equal(t, model.SeverityHigh, fs[0].Severity)
	assert.Contains(t, fs[0].References, "SWC-115")
}

func TestTxOriginInModifier(t *testing.T) {
	u := unit(t, `contract Wallet {
    address public owner;

    modifier auth() {
        require(tx.origin == owner);
        _;
    }
}`)
	fs := (&txOriginAuth{}).Inspect(u)
	require.Len(t, fs, 1)
	assert.Equal(t, "auth", fs[0].Function)
}

func TestTxOriginMsgSenderNotFlagged(t *testing.T) {
	u := unit(t, `contract Wallet {
    address public owner;

    function pay(address to, uint256 amount) public {
        require(msg.sender == owner, "not owner");
        payable(to).transfer(amount);
    }
}`)
	assert.Empty(t, (&txOriginAuth{}).Inspect(u))
}

func TestUncheckedCallUnbound(t *testing.T) {
	u := unit(t, `contract Payer {
    function pay(address to) public {
        to.call{value: 1 ether}("");
    }
}`)
	fs := (&uncheckedCallReturn{}).Inspect(u)
	require.Len(t, fs, 1)
	assert.Contains(t, fs[0].References, "SWC-104")
}

func TestUncheckedCallBoundButNeverChecked(t *testing.T) {
	u := unit(t, `contract Payer {
    function pay(address to) public {
        (bool ok, ) = to.call{value: 1 ether}("");
    }
}`)
	require.Len(t, (&uncheckedCallReturn{}).Inspect(u), 1)
}

func TestUncheckedCallRequiredNotFlagged(t *testing.T) {
	u := unit(t, `contract Payer {
    function pay(address to) public {
        (bool ok, ) = to.call{value: 1 ether}("");
        require(ok, "call failed");
    }
}`)
	assert.Empty(t, (&uncheckedCallReturn{}).Inspect(u))
}

func TestUncheckedCallTransferExempt(t *testing.T) {
	u := unit(t, `contract Payer {
    function pay(address to) public {
        payable(to).transfer(1 ether);
    }
}`)
	assert.Empty(t, (&uncheckedCallReturn{}).Inspect(u))
}

func TestUncheckedSendFlagged(t *testing.T) {
	u := unit(t, `contract Payer {
    function pay(address to) public {
        payable(to).send(1 ether);
    }
}`)
	require.Len(t, (&uncheckedCallReturn{}).Inspect(u), 1)
}

func TestTimestampModulusFlagged(t *testing.T) {
	u := unit(t, `contract Lottery {
    function draw() public view returns (bool) {
        require(block.timestamp % 15 == 0, "not yet");
        return true;
    }
}`)
	fs := (&timestampDependence{}).Inspect(u)
	require.Len(t, fs, 1)
	assert.Equal(t, model.SeverityMedium, fs[0].Severity)
}

func TestTimestampDeadlineComparisonNotFlagged(t *testing.T) {
	u := unit(t, `contract Sale {
    uint256 public deadline;

    function buy() public payable {
        require(block.timestamp < deadline, "sale over");
    }
}`)
	assert.Empty(t, (&timestampDependence{}).Inspect(u))
}

func TestDelegatecallParamTarget(t *testing.T) {
	u := unit(t, `contract Proxy {
    function execute(address target, bytes memory data) public {
        (bool ok, ) = target.delegatecall(data);
        require(ok);
    }
}`)
	fs := (&unsafeDelegatecall{}).Inspect(u)
	require.Len(t, fs, 1)
	assert.Equal(t, model.SeverityCritical, fs[0].Severity)
	assert.Contains(t, fs[0].References, "SWC-112")
}

func TestDelegatecallImmutableTargetTrusted(t *testing.T) {
	u := unit(t, `contract Proxy {
    address public immutable impl;

    constructor(address a) {
        impl = a;
    }

    function run(bytes memory data) public {
        (bool ok, ) = impl.delegatecall(data);
        require(ok);
    }
}`)
	assert.Empty(t, (&unsafeDelegatecall{}).Inspect(u))
}

func TestLockedEtherNoEgress(t *testing.T) {
	u := unit(t, `contract Sink {
    uint256 public received;

    function deposit() public payable {
        received = received + msg.value;
    }
}`)
	fs := (&lockedEther{}).Inspect(u)
	require.Len(t, fs, 1)
	assert.Equal(t, model.SeverityMedium, fs[0].Severity)
	assert.Empty(t, fs[0].Function)
	assert.Contains(t, fs[0].References, "SWC-132")
}

func TestLockedEtherWithWithdrawalNotFlagged(t *testing.T) {
	u := unit(t, `contract Sink {
    address public owner;

    function deposit() public payable {}

    function withdraw() public {
        require(msg.sender == owner);
        payable(owner).transfer(address(this).balance);
    }
}`)
	assert.Empty(t, (&lockedEther{}).Inspect(u))
}

func TestLockedEtherNonPayableIgnored(t *testing.T) {
	u := unit(t, `contract Plain {
    uint256 public x;

    function set(uint256 v) public {
        x = v;
    }
}`)
	assert.Empty(t, (&lockedEther{}).Inspect(u))
}
