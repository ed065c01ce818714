package usecase

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
)

// In-memory repository fakes shared by the usecase tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	rates map[string]entity.RatingSummary
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users: make(map[string]*entity.User),
		rates: make(map[string]entity.RatingSummary),
	}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memUserRepo) GetByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Mobile == mobile {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(ctx context.Context, role string, limit, offset int) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) Count(ctx context.Context, role string) (int64, error) {
	users, total, _ := r.List(ctx, role, 0, 0)
	_ = users
	return total, nil
}

func (r *memUserRepo) SetRatingSummary(ctx context.Context, userID string, rate entity.RatingSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates[userID] = rate
	return nil
}

type memItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item
	rates map[string]entity.RatingSummary
	seq   int
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{
		items: make(map[string]*entity.Item),
		rates: make(map[string]entity.RatingSummary),
	}
}

func (r *memItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		r.seq++
		item.ID = "item-" + strconv.Itoa(r.seq)
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, errors.NotFound("Item", nil)
}

func (r *memItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return errors.NotFound("Item", nil)
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memItemRepo) List(ctx context.Context, filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Item
	for _, it := range r.items {
		if filter.SellerID != "" && it.SellerID != filter.SellerID {
			continue
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.Status != "" && it.Status != filter.Status {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *memItemRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memItemRepo) SetRatingSummary(ctx context.Context, itemID string, rate entity.RatingSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates[itemID] = rate
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
	seq    int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *memOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		r.seq++
		order.ID = "order-" + strconv.Itoa(r.seq)
	}
	order.CreatedAt = time.Now()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, errors.NotFound("Order", nil)
}

func (r *memOrderRepo) GetByIDForBuyer(ctx context.Context, id, buyerID string) (*entity.Order, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, errors.NotFound("Order", nil)
	}
	return order, nil
}

func (r *memOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return errors.NotFound("Order", nil)
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) Delete(ctx context.Context, id, buyerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.BuyerID != buyerID {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

func (r *memOrderRepo) ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if o.BuyerID == buyerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, o := range r.orders {
		if o.SellerID == sellerID {
			n++
		}
	}
	return n, nil
}

func (r *memOrderRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.SecretCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrderRepo) HasActiveOrder(ctx context.Context, buyerID, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.BuyerID == buyerID && o.ItemID == itemID && o.Active() {
			return true, nil
		}
	}
	return false, nil
}

type memCouponRepo struct {
	mu      sync.Mutex
	coupons map[string]*entity.Coupon
	orders  *memOrderRepo
	seq     int
}

func newMemCouponRepo(orders *memOrderRepo) *memCouponRepo {
	return &memCouponRepo{
		coupons: make(map[string]*entity.Coupon),
		orders:  orders,
	}
}

func (r *memCouponRepo) Create(ctx context.Context, coupon *entity.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if coupon.ID == "" {
		r.seq++
		coupon.ID = "coupon-" + strconv.Itoa(r.seq)
	}
	cp := *coupon
	r.coupons[coupon.ID] = &cp
	return nil
}

func (r *memCouponRepo) GetByID(ctx context.Context, id, sellerID string) (*entity.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[id]
	if !ok || (sellerID != "" && c.SellerID != sellerID) {
		return nil, errors.NotFound("Coupon", nil)
	}
	cp := *c
	return &cp, nil
}

func (r *memCouponRepo) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Coupon", nil)
}

func (r *memCouponRepo) Update(ctx context.Context, coupon *entity.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coupons[coupon.ID]; !ok {
		return errors.NotFound("Coupon", nil)
	}
	cp := *coupon
	r.coupons[coupon.ID] = &cp
	return nil
}

func (r *memCouponRepo) Delete(ctx context.Context, id, sellerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[id]
	if !ok || c.SellerID != sellerID {
		return false, nil
	}
	delete(r.coupons, id)
	return true, nil
}

func (r *memCouponRepo) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Coupon, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Coupon
	for _, c := range r.coupons {
		if c.SellerID == sellerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memCouponRepo) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	_, total, _ := r.ListBySeller(ctx, sellerID, 0, 0)
	return total, nil
}

// Apply mirrors the transactional contract: the decrement and the order
// rewrite happen under one lock, so concurrent callers see a consistent
// remaining-uses count and the total is computed from the order as stored.
func (r *memCouponRepo) Apply(ctx context.Context, couponID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.coupons[couponID]
	if !ok {
		return errors.NotFound("Coupon", nil)
	}
	if c.Expired(time.Now()) {
		return errors.BadRequest("Coupon has expired", nil)
	}
	if c.RemainingUses <= 0 {
		return errors.BadRequest("Coupon has no remaining uses", nil)
	}

	r.orders.mu.Lock()
	o, ok := r.orders.orders[orderID]
	if !ok {
		r.orders.mu.Unlock()
		return errors.NotFound("Order", nil)
	}

	c.RemainingUses--
	c.NumberUses++
	o.DiscountType = entity.DiscountTypeCoupon
	o.Discount = float64(c.Discount)
	o.TotalPrice = o.TotalWith(float64(c.Discount))
	r.orders.mu.Unlock()
	return nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
	seq     int
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *memReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID == "" {
		r.seq++
		review.ID = "review-" + strconv.Itoa(r.seq)
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rev, ok := r.reviews[id]; ok {
		cp := *rev
		return &cp, nil
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *memReviewRepo) GetByBuyerAndItem(ctx context.Context, buyerID, itemID string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.reviews {
		if rev.BuyerID == buyerID && rev.ItemID == itemID {
			cp := *rev
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *memReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return errors.NotFound("Review", nil)
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *memReviewRepo) Delete(ctx context.Context, id, buyerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.reviews[id]
	if !ok || rev.BuyerID != buyerID {
		return false, nil
	}
	delete(r.reviews, id)
	return true, nil
}

func (r *memReviewRepo) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, rev := range r.reviews {
		if rev.SellerID == sellerID {
			cp := *rev
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memReviewRepo) Count(ctx context.Context, sellerID, itemID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rev := range r.reviews {
		if (sellerID == "" || rev.SellerID == sellerID) && (itemID == "" || rev.ItemID == itemID) {
			n++
		}
	}
	return n, nil
}

func (r *memReviewRepo) Aggregate(ctx context.Context, sellerID, itemID string) ([]repository.ReviewBucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, rev := range r.reviews {
		if rev.SellerID != sellerID {
			continue
		}
		if itemID != "" && rev.ItemID != itemID {
			continue
		}
		counts[rev.Title]++
		sums[rev.Title] += rev.Rate
	}

	var buckets []repository.ReviewBucket
	for _, title := range entity.ReviewTitles {
		if counts[title] == 0 {
			continue
		}
		buckets = append(buckets, repository.ReviewBucket{
			Title:       title,
			Count:       counts[title],
			AverageRate: sums[title] / float64(counts[title]),
		})
	}
	return buckets, nil
}

type memFollowRepo struct {
	mu      sync.Mutex
	follows map[string]*entity.Follow
	seq     int
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{follows: make(map[string]*entity.Follow)}
}

func (r *memFollowRepo) Create(ctx context.Context, follow *entity.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if follow.ID == "" {
		r.seq++
		follow.ID = "follow-" + strconv.Itoa(r.seq)
	}
	cp := *follow
	r.follows[follow.ID] = &cp
	return nil
}

func (r *memFollowRepo) Delete(ctx context.Context, id, userID, side string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.follows[id]
	if !ok {
		return false, nil
	}
	owner := f.FollowerID
	if side == "follower" {
		owner = f.FollowingID
	}
	if owner != userID {
		return false, nil
	}
	delete(r.follows, id)
	return true, nil
}

func (r *memFollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFollowRepo) GetByID(ctx context.Context, id, userID, side string) (*entity.Follow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.follows[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, errors.NotFound("Follow", nil)
}

func (r *memFollowRepo) List(ctx context.Context, userID, side string, limit, offset int) ([]*entity.Follow, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Follow
	for _, f := range r.follows {
		owner := f.FollowerID
		if side == "follower" {
			owner = f.FollowingID
		}
		if owner == userID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memFollowRepo) Search(ctx context.Context, userID, side, namePrefix string, limit, offset int) ([]*entity.Follow, int64, error) {
	all, _, _ := r.List(ctx, userID, side, 0, 0)
	var out []*entity.Follow
	for _, f := range all {
		if strings.HasPrefix(f.FollowingName, namePrefix) {
			out = append(out, f)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memFollowRepo) Count(ctx context.Context, userID, side string) (int64, error) {
	_, total, _ := r.List(ctx, userID, side, 0, 0)
	return total, nil
}

type memReportRepo struct {
	mu      sync.Mutex
	reports map[string]*entity.Report
	seq     int
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{reports: make(map[string]*entity.Report)}
}

func (r *memReportRepo) Create(ctx context.Context, report *entity.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == "" {
		r.seq++
		report.ID = "report-" + strconv.Itoa(r.seq)
	}
	cp := *report
	r.reports[report.ID] = &cp
	return nil
}

func (r *memReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rep, ok := r.reports[id]; ok {
		cp := *rep
		return &cp, nil
	}
	return nil, errors.NotFound("Report", nil)
}

func (r *memReportRepo) GetByReporterAndTarget(ctx context.Context, reporterID, targetID string) (*entity.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range r.reports {
		if rep.ReporterID == reporterID && rep.TargetID == targetID {
			cp := *rep
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Report", nil)
}

func (r *memReportRepo) Update(ctx context.Context, report *entity.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[report.ID]; !ok {
		return errors.NotFound("Report", nil)
	}
	cp := *report
	r.reports[report.ID] = &cp
	return nil
}

func (r *memReportRepo) Delete(ctx context.Context, id, reporterID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok || rep.ReporterID != reporterID {
		return false, nil
	}
	delete(r.reports, id)
	return true, nil
}

func (r *memReportRepo) ListByReporter(ctx context.Context, reporterID string, limit, offset int) ([]*entity.Report, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Report
	for _, rep := range r.reports {
		if rep.ReporterID == reporterID {
			cp := *rep
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memReportRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Report, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Report
	for _, rep := range r.reports {
		if status == "" || rep.Status == status {
			cp := *rep
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memReportRepo) CountByReporter(ctx context.Context, reporterID string) (int64, error) {
	_, total, _ := r.ListByReporter(ctx, reporterID, 0, 0)
	return total, nil
}

type memChatRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string]*entity.Message
	seq           int
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string]*entity.Message),
	}
}

func (r *memChatRepo) CreateConversation(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conversation.ID == "" {
		r.seq++
		conversation.ID = "conv-" + strconv.Itoa(r.seq)
	}
	cp := *conversation
	r.conversations[conversation.ID] = &cp
	return nil
}

func (r *memChatRepo) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conv, ok := r.conversations[id]; ok {
		cp := *conv
		return &cp, nil
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *memChatRepo) FindConversation(ctx context.Context, userA, userB string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conv := range r.conversations {
		hasA, hasB := false, false
		for _, p := range conv.Participants {
			if p == userA {
				hasA = true
			}
			if p == userB {
				hasB = true
			}
		}
		if hasA && hasB {
			cp := *conv
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *memChatRepo) UpdateConversation(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *conversation
	r.conversations[conversation.ID] = &cp
	return nil
}

func (r *memChatRepo) ListConversations(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Conversation
	for _, conv := range r.conversations {
		for _, p := range conv.Participants {
			if p == userID {
				cp := *conv
				out = append(out, &cp)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (r *memChatRepo) CountConversations(ctx context.Context, userID string) (int64, error) {
	_, total, _ := r.ListConversations(ctx, userID, 0, 0)
	return total, nil
}

func (r *memChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		r.seq++
		message.ID = "msg-" + strconv.Itoa(r.seq)
	}
	cp := *message
	r.messages[message.ID] = &cp
	return nil
}

func (r *memChatRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memChatRepo) MarkRead(ctx context.Context, conversationID, readerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, m := range r.messages {
		if m.ConversationID == conversationID && m.RecipientID == readerID && m.ReadAt == nil {
			m.ReadAt = &now
		}
	}
	return nil
}

// Infrastructure fakes.

type fakeAuthProvider struct {
	mu             sync.Mutex
	existingEmails map[string]bool
	verifiedUIDs   map[string]bool
	created        []string
	revoked        []string
	signInErr      error
	nextUID        string
}

func newFakeAuthProvider() *fakeAuthProvider {
	return &fakeAuthProvider{
		existingEmails: make(map[string]bool),
		verifiedUIDs:   make(map[string]bool),
		nextUID:        "uid-new",
	}
}

func (f *fakeAuthProvider) CreateUser(ctx context.Context, email, password, phone string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.existingEmails[email] = true
	f.created = append(f.created, email)
	return f.nextUID, nil
}

func (f *fakeAuthProvider) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existingEmails[email], nil
}

func (f *fakeAuthProvider) EmailVerified(ctx context.Context, uid string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifiedUIDs[uid], nil
}

func (f *fakeAuthProvider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	return strings.TrimPrefix(idToken, "idtoken-"), nil
}

func (f *fakeAuthProvider) RevokeRefreshTokens(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, uid)
	return nil
}

func (f *fakeAuthProvider) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	return "https://example.test/verify/" + email, nil
}

func (f *fakeAuthProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	return "https://example.test/reset/" + email, nil
}

func (f *fakeAuthProvider) SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error) {
	if f.signInErr != nil {
		return "", "", f.signInErr
	}
	return "idtoken-" + email, "refresh-" + email, nil
}

func (f *fakeAuthProvider) ExchangeRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return "idtoken-from-" + refreshToken, nil
}

type fakePendingCache struct {
	mu      sync.Mutex
	entries map[string]*entity.User
}

func newFakePendingCache() *fakePendingCache {
	return &fakePendingCache{entries: make(map[string]*entity.User)}
}

func (f *fakePendingCache) Set(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.entries[user.ID] = &cp
	return nil
}

func (f *fakePendingCache) Get(ctx context.Context, uid string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.entries[uid]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errors.NotFound("Pending registration", nil)
}

func (f *fakePendingCache) Delete(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, uid)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) SendVerificationLink(to, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeMailer) SendPasswordResetLink(to, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushed []string
}

func (f *fakePusher) Send(ctx context.Context, deviceToken, title, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, deviceToken)
	return "msg-id", nil
}

type fakePresence struct {
	mu        sync.Mutex
	online    map[string]bool
	delivered map[string][][]byte
}

func newFakePresence() *fakePresence {
	return &fakePresence{
		online:    make(map[string]bool),
		delivered: make(map[string][][]byte),
	}
}

func (f *fakePresence) IsOnline(userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online[userID]
}

func (f *fakePresence) SendToUser(userID string, payload []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.online[userID] {
		return false
	}
	f.delivered[userID] = append(f.delivered[userID], payload)
	return true
}

type fakeLimiter struct {
	denyAction string
}

func (f *fakeLimiter) Allow(userID, action string) (bool, time.Duration) {
	if action == f.denyAction {
		return false, time.Second
	}
	return true, 0
}
