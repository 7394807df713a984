package domain

const (
	TableAuctions       Table = "auctions"
	TableBids           Table = "bids"
	TableUserBidRecords Table = "user_bid_records"
	TableWallets        Table = "wallets"
	TableLeaderboard    Table = "leaderboard"
	TableNotifications  Table = "notifications"
)
